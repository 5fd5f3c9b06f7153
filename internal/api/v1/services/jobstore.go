package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"

	"memo-whisper/internal/app/model"
)

// ErrJobNotFound is returned when a job id has no stored record.
var ErrJobNotFound = errors.New("job not found")

// JobStore persists API job state. The server runs on the in-memory store
// unless a redis address is configured.
type JobStore interface {
	Save(ctx context.Context, job *model.TranscriptionJob) error
	Get(ctx context.Context, id string) (*model.TranscriptionJob, error)
	List(ctx context.Context) ([]*model.TranscriptionJob, error)
	Delete(ctx context.Context, id string) error
}

// MemoryJobStore keeps jobs in a map. Values are copied on the way in and
// out so the processing goroutine and the handlers never share a struct.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]model.TranscriptionJob
}

// NewMemoryJobStore creates an empty in-memory job store.
func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]model.TranscriptionJob)}
}

func (s *MemoryJobStore) Save(ctx context.Context, job *model.TranscriptionJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

func (s *MemoryJobStore) Get(ctx context.Context, id string) (*model.TranscriptionJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return &job, nil
}

func (s *MemoryJobStore) List(ctx context.Context) ([]*model.TranscriptionJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]*model.TranscriptionJob, 0, len(s.jobs))
	for id := range s.jobs {
		job := s.jobs[id]
		jobs = append(jobs, &job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func (s *MemoryJobStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return ErrJobNotFound
	}
	delete(s.jobs, id)
	return nil
}

const (
	redisJobKeyPrefix = "m2t:job:"
	redisJobIndexKey  = "m2t:jobs"
)

// RedisJobStore keeps jobs as JSON values plus a sorted-set index for
// newest-first listing, so job state survives server restarts.
type RedisJobStore struct {
	client *redis.Client
}

// NewRedisJobStore dials addr and verifies the connection.
func NewRedisJobStore(ctx context.Context, addr string) (*RedisJobStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisJobStore{client: client}, nil
}

func (s *RedisJobStore) Save(ctx context.Context, job *model.TranscriptionJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job %s: %w", job.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisJobKeyPrefix+job.ID, data, 0)
	pipe.ZAdd(ctx, redisJobIndexKey, redis.Z{
		Score:  float64(job.CreatedAt.UnixNano()),
		Member: job.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store job %s: %w", job.ID, err)
	}
	return nil
}

func (s *RedisJobStore) Get(ctx context.Context, id string) (*model.TranscriptionJob, error) {
	data, err := s.client.Get(ctx, redisJobKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	var job model.TranscriptionJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job %s: %w", id, err)
	}
	return &job, nil
}

func (s *RedisJobStore) List(ctx context.Context) ([]*model.TranscriptionJob, error) {
	ids, err := s.client.ZRevRange(ctx, redisJobIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]*model.TranscriptionJob, 0, len(ids))
	for _, id := range ids {
		job, err := s.Get(ctx, id)
		if errors.Is(err, ErrJobNotFound) {
			// Index entry outlived the record.
			continue
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (s *RedisJobStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, redisJobKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	if err := s.client.ZRem(ctx, redisJobIndexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex job %s: %w", id, err)
	}
	if removed == 0 {
		return ErrJobNotFound
	}
	return nil
}

// Close releases the redis connection.
func (s *RedisJobStore) Close() error {
	return s.client.Close()
}
