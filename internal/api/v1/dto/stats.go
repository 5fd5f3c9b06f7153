package dto

// StatsResponse aggregates the stored transcriptions and the live job queue.
type StatsResponse struct {
	TotalTranscriptions int       `json:"total_transcriptions"`
	Completed           int       `json:"completed"`
	Partial             int       `json:"partial"`
	Failed              int       `json:"failed"`
	Projects            int       `json:"projects"`
	TotalAudioMs        int64     `json:"total_audio_ms"`
	TotalAudioHours     float64   `json:"total_audio_hours"`
	Jobs                JobCounts `json:"jobs"`
}

// JobCounts breaks the job queue down by status.
type JobCounts struct {
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
}
