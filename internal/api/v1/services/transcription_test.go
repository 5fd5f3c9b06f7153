package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memo-whisper/internal/api/v1/dto"
	"memo-whisper/internal/app/model"
)

func testRecord(id int, project string, chunks, succeeded int) model.Transcription {
	return model.Transcription{
		ID:                 id,
		Project:            project,
		FileName:           "rec.m4a",
		AudioDurationMs:    60000,
		ChunkCount:         chunks,
		SuccessCount:       succeeded,
		Transcript:         "some words",
		Provider:           "openai",
		Language:           "en",
		LastConversionTime: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute),
	}
}

func TestTranscriptionService_ListRecent(t *testing.T) {
	dao := &fakeDAO{
		recent: []model.Transcription{
			testRecord(3, "weekly", 2, 2),
			testRecord(2, "weekly", 3, 2),
			testRecord(1, "memos", 1, 0),
		},
	}
	svc := NewTranscriptionService(dao)

	resp, err := svc.ListTranscriptions(context.Background(), dto.ListTranscriptionsQuery{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, dao.recentLimit)
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Transcriptions, 3)

	assert.Equal(t, "completed", resp.Transcriptions[0].Status)
	assert.Equal(t, "partial", resp.Transcriptions[1].Status)
	assert.Equal(t, "failed", resp.Transcriptions[2].Status)
}

func TestTranscriptionService_ListByProject(t *testing.T) {
	dao := &fakeDAO{
		byProject: map[string][]model.Transcription{
			"weekly": {
				testRecord(3, "weekly", 2, 2),
				testRecord(2, "weekly", 2, 2),
				testRecord(1, "weekly", 2, 2),
			},
		},
	}
	svc := NewTranscriptionService(dao)

	resp, err := svc.ListTranscriptions(context.Background(), dto.ListTranscriptionsQuery{
		Project: "weekly",
		Limit:   2,
	})
	require.NoError(t, err)

	// Total counts the whole project even when the page is truncated.
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Transcriptions, 2)
	assert.Equal(t, 3, resp.Transcriptions[0].ID)
}

func TestTranscriptionService_DatabaseError(t *testing.T) {
	dao := &fakeDAO{err: errors.New("database is locked")}
	svc := NewTranscriptionService(dao)

	_, err := svc.ListTranscriptions(context.Background(), dto.ListTranscriptionsQuery{Limit: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list transcriptions")
}
