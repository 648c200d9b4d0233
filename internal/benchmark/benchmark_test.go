package benchmark

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want int
	}{
		{5, 1, 10, 5},
		{0, 1, 10, 1},
		{-3, 1, 10, 1},
		{100, 1, 10, 10},
		{1, 1, 10, 1},
		{10, 1, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestCPU(t *testing.T) {
	res := CPU(10_000, 1)

	if res.Iterations != 10_000 {
		t.Errorf("Iterations = %d, want 10000", res.Iterations)
	}
	if res.FloatResult <= 0 {
		t.Errorf("FloatResult = %f, want > 0", res.FloatResult)
	}
	// Primes up to min(10000/100, 10000) = 100: there are 25.
	if res.PrimeCount != 25 {
		t.Errorf("PrimeCount = %d, want 25", res.PrimeCount)
	}
	if res.Duration <= 0 {
		t.Error("Duration should be positive")
	}
}

func TestCPUComplexityLevels(t *testing.T) {
	// Each level must complete and produce a finite result.
	for complexity := 1; complexity <= 3; complexity++ {
		res := CPU(1000, complexity)
		if res.Complexity != complexity {
			t.Errorf("Complexity = %d, want %d", res.Complexity, complexity)
		}
	}
}

func TestCountPrimes(t *testing.T) {
	tests := []struct {
		max, want int
	}{
		{1, 0},
		{2, 1},
		{10, 4},
		{100, 25},
		{1000, 168},
	}
	for _, tt := range tests {
		if got := countPrimes(tt.max); got != tt.want {
			t.Errorf("countPrimes(%d) = %d, want %d", tt.max, got, tt.want)
		}
	}
}

func TestMemory(t *testing.T) {
	res := Memory(2, 100)

	if res.SizeMB != 2 {
		t.Errorf("SizeMB = %d, want 2", res.SizeMB)
	}
	if res.Operations != 100 {
		t.Errorf("Operations = %d, want 100", res.Operations)
	}
	if res.AllocationTime < 0 || res.OperationTime < 0 {
		t.Error("timings should be non-negative")
	}
	if res.Usage.PeakHeapMB < res.Usage.InitialHeapMB {
		t.Errorf("peak heap (%d MB) should be at least initial heap (%d MB)",
			res.Usage.PeakHeapMB, res.Usage.InitialHeapMB)
	}
}

func TestLatencySequential(t *testing.T) {
	var offsets []int
	res := Latency(context.Background(), 3, false, 0, func(ctx context.Context, offset int) error {
		offsets = append(offsets, offset)
		return nil
	})

	if res.QueryCount != 3 {
		t.Errorf("QueryCount = %d, want 3", res.QueryCount)
	}
	if res.Parallel {
		t.Error("Parallel should be false")
	}
	if len(res.QueryTimes) != 3 {
		t.Fatalf("len(QueryTimes) = %d, want 3", len(res.QueryTimes))
	}
	// Offsets step by 5 per query.
	want := []int{0, 5, 10}
	for i, off := range offsets {
		if off != want[i] {
			t.Errorf("offset[%d] = %d, want %d", i, off, want[i])
		}
	}
	if res.MinQuery > res.AvgQuery || res.AvgQuery > res.MaxQuery {
		t.Errorf("stats out of order: min=%v avg=%v max=%v", res.MinQuery, res.AvgQuery, res.MaxQuery)
	}
}

func TestLatencyParallel(t *testing.T) {
	res := Latency(context.Background(), 5, true, 0, func(ctx context.Context, offset int) error {
		time.Sleep(5 * time.Millisecond)
		return nil
	})

	if len(res.QueryTimes) != 5 {
		t.Fatalf("len(QueryTimes) = %d, want 5", len(res.QueryTimes))
	}
	// Five 5ms queries in parallel should finish well under 5*5ms.
	if res.DBTotal > 20*time.Millisecond {
		t.Errorf("parallel DBTotal = %v, expected under 20ms", res.DBTotal)
	}
}

func TestLatencyQueryErrorFallback(t *testing.T) {
	res := Latency(context.Background(), 1, false, 0, func(ctx context.Context, offset int) error {
		return errors.New("db down")
	})

	// The fallback sleeps 10ms so the sample is still meaningful.
	if res.QueryTimes[0] < 10*time.Millisecond {
		t.Errorf("failed query time = %v, want >= 10ms fallback", res.QueryTimes[0])
	}
}

func TestLatencyNetworkDelay(t *testing.T) {
	res := Latency(context.Background(), 1, false, 20*time.Millisecond, func(ctx context.Context, offset int) error {
		return nil
	})

	if res.NetworkDelay < 20*time.Millisecond {
		t.Errorf("NetworkDelay = %v, want >= 20ms", res.NetworkDelay)
	}
}

func TestNewInstance(t *testing.T) {
	in := NewInstance()

	if !strings.HasPrefix(in.ID, "k8s-") {
		t.Errorf("ID = %q, want k8s- prefix", in.ID)
	}
	if in.Hostname == "" {
		t.Error("Hostname should not be empty")
	}

	// Counters are per-kind and monotonic.
	if n := in.Count("cpu"); n != 1 {
		t.Errorf("first cpu count = %d, want 1", n)
	}
	if n := in.Count("cpu"); n != 2 {
		t.Errorf("second cpu count = %d, want 2", n)
	}
	if n := in.Count("memory"); n != 1 {
		t.Errorf("first memory count = %d, want 1 (independent of cpu)", n)
	}
}

func TestInstanceWarm(t *testing.T) {
	in := NewInstance()

	// A fresh instance is never warm.
	if in.Warm(2) {
		t.Error("fresh instance should not be warm")
	}

	in.StartedAt = time.Now().Add(-time.Minute)
	if !in.Warm(2) {
		t.Error("aged instance with repeat requests should be warm")
	}
	if in.Warm(1) {
		t.Error("first request is a cold start even on an aged instance")
	}
}
