package benchmark

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Instance identifies one running server process across benchmark runs.
// Load-test reports correlate responses by instance id to tell scale-out
// events and cold starts apart from steady-state serving.
type Instance struct {
	ID        string
	Hostname  string
	NodeName  string
	StartedAt time.Time

	cpuCount     atomic.Int64
	memoryCount  atomic.Int64
	latencyCount atomic.Int64
}

// NewInstance creates the process-wide instance record.
func NewInstance() *Instance {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "unknown"
	}
	nodeName := os.Getenv("NODE_NAME")
	if nodeName == "" {
		nodeName = "unknown"
	}
	return &Instance{
		ID:        fmt.Sprintf("k8s-%s-%s", hostname, uuid.NewString()[:8]),
		Hostname:  hostname,
		NodeName:  nodeName,
		StartedAt: time.Now(),
	}
}

// Count increments and returns the request counter for a benchmark kind
// ("cpu", "memory" or "latency"). A count of 1 marks a cold start.
func (in *Instance) Count(kind string) int64 {
	switch kind {
	case "cpu":
		return in.cpuCount.Add(1)
	case "memory":
		return in.memoryCount.Add(1)
	default:
		return in.latencyCount.Add(1)
	}
}

// Age returns how long the instance has been running.
func (in *Instance) Age() time.Duration {
	return time.Since(in.StartedAt)
}

// Warm reports whether the instance is past its warm-up period and has
// already served at least one request of this kind.
func (in *Instance) Warm(requestNumber int64) bool {
	return in.Age() > 5*time.Second && requestNumber > 1
}
