package worker

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os/exec"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	temporalcommon "memo-whisper/internal/app/temporal/pkg/common"
)

// HealthStatus is the worker health document served on /health.
type HealthStatus struct {
	WorkerID  string           `json:"worker_id"`
	TaskQueue string           `json:"task_queue"`
	Status    string           `json:"status"`
	Uptime    time.Duration    `json:"uptime"`
	StartedAt time.Time        `json:"started_at"`
	Temporal  ConnectionStatus `json:"temporal"`
	Redis     ConnectionStatus `json:"redis,omitempty"`
	MinIO     ConnectionStatus `json:"minio,omitempty"`
	FFmpeg    ToolStatus       `json:"ffmpeg"`
}

// ConnectionStatus describes one external dependency.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Endpoint  string `json:"endpoint"`
	Error     string `json:"error,omitempty"`
}

// ToolStatus describes a required local binary.
type ToolStatus struct {
	Available bool   `json:"available"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

const dependencyCheckTimeout = 5 * time.Second

// CheckRedis pings the store the API job queue lives in. An empty address
// means redis is not configured, which is fine for a worker.
func CheckRedis(ctx context.Context, addr string) ConnectionStatus {
	status := ConnectionStatus{Endpoint: addr}
	if addr == "" {
		return status
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(ctx, dependencyCheckTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true
	return status
}

// CheckMinIO probes the archive object store.
func CheckMinIO(ctx context.Context, endpoint, accessKey, secretKey string) ConnectionStatus {
	status := ConnectionStatus{Endpoint: endpoint}
	if endpoint == "" {
		return status
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		status.Error = err.Error()
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, dependencyCheckTimeout)
	defer cancel()

	if _, err := client.ListBuckets(ctx); err != nil {
		status.Error = err.Error()
		return status
	}
	status.Connected = true
	return status
}

// CheckFFmpeg verifies the audio toolchain is on PATH. Without it the worker
// cannot probe or chunk anything.
func CheckFFmpeg() ToolStatus {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return ToolStatus{Error: err.Error()}
	}
	return ToolStatus{Available: true, Path: path}
}

// HealthMonitor serves worker liveness and dependency status over HTTP.
type HealthMonitor struct {
	mu     sync.Mutex
	status HealthStatus
}

func NewHealthMonitor(workerID, taskQueue string) *HealthMonitor {
	return &HealthMonitor{
		status: HealthStatus{
			WorkerID:  workerID,
			TaskQueue: taskQueue,
			StartedAt: time.Now(),
		},
	}
}

// SetTemporal records the Temporal connection state.
func (m *HealthMonitor) SetTemporal(status ConnectionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.Temporal = status
}

// RefreshDependencies re-probes redis, minio and ffmpeg.
func (m *HealthMonitor) RefreshDependencies(ctx context.Context) {
	redisStatus := CheckRedis(ctx, temporalcommon.GetEnv("REDIS_ADDR", ""))
	minioStatus := CheckMinIO(ctx,
		temporalcommon.GetEnv("MINIO_ENDPOINT", ""),
		temporalcommon.GetEnv("MINIO_ACCESS_KEY", temporalcommon.DefaultMinIOAccessKey),
		temporalcommon.GetEnv("MINIO_SECRET_KEY", temporalcommon.DefaultMinIOSecretKey))
	ffmpegStatus := CheckFFmpeg()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.status.Redis = redisStatus
	m.status.MinIO = minioStatus
	m.status.FFmpeg = ffmpegStatus
}

func (m *HealthMonitor) snapshot() HealthStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := m.status
	status.Uptime = time.Since(status.StartedAt)

	switch {
	case !status.Temporal.Connected || !status.FFmpeg.Available:
		status.Status = "unhealthy"
	case status.Redis.Error != "" || status.MinIO.Error != "":
		status.Status = "degraded"
	default:
		status.Status = "healthy"
	}
	return status
}

// Start serves /health, /live and /ready in the background.
func (m *HealthMonitor) Start(port string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		m.RefreshDependencies(r.Context())
		status := m.snapshot()

		w.Header().Set("Content-Type", "application/json")
		if status.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(status)
	})

	mux.HandleFunc("/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if m.snapshot().Temporal.Connected {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("READY"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
	})

	go func() {
		if err := http.ListenAndServe(port, mux); err != nil {
			log.Printf("Health server failed on %s: %v", port, err)
		}
	}()
}
