package model

type FFProbeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
	Format struct {
		DurationSeconds float64 `json:"duration,string"`
		SizeBytes       int64   `json:"size,string"`
		BitRate         int64   `json:"bit_rate,string"`
	} `json:"format"`
}
