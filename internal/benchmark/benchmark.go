// Package benchmark implements the synthetic workloads behind the
// platform-comparison endpoints: CPU burn, memory allocation churn, and
// database round-trip latency. The workloads produce comparable numbers
// across deployment targets; they are deliberately wasteful.
package benchmark

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"time"
)

// Workload parameter bounds. Request parameters outside these ranges are
// clamped rather than rejected, so a sloppy load-test script still gets a
// response instead of a 400.
const (
	MaxIterations = 50_000_000
	MaxComplexity = 3
	MaxSizeMB     = 256
	MaxOperations = 1_000_000
	MaxDBQueries  = 50
	MaxDelayMS    = 10_000
)

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CPUResult holds the metrics of one CPU workload run.
type CPUResult struct {
	Duration    time.Duration
	Iterations  int
	Complexity  int
	OpsPerSec   int64
	PrimeCount  int
	FloatResult float64
}

// CPU runs iterations of floating-point work at the given complexity level
// (1 = sqrt, 2 = sqrt*sin, 3 = sqrt*sin*cos*tan), then counts primes up to
// min(iterations/100, 10000) by trial division.
func CPU(iterations, complexity int) CPUResult {
	start := time.Now()

	var result float64
	for i := 0; i < iterations; i++ {
		f := float64(i)
		switch complexity {
		case 2:
			result += math.Sqrt(f) * math.Sin(f)
		case 3:
			result += math.Sqrt(f) * math.Sin(f) * math.Cos(f) * math.Tan(float64(i%90))
		default:
			result += math.Sqrt(f)
		}
	}

	primes := countPrimes(min(iterations/100, 10_000))

	elapsed := time.Since(start)
	opsPerSec := int64(0)
	if ms := elapsed.Milliseconds(); ms > 0 {
		opsPerSec = int64(iterations) * 1000 / ms
	}

	return CPUResult{
		Duration:    elapsed,
		Iterations:  iterations,
		Complexity:  complexity,
		OpsPerSec:   opsPerSec,
		PrimeCount:  primes,
		FloatResult: result,
	}
}

// countPrimes counts primes in [2, max] by trial division.
func countPrimes(max int) int {
	count := 0
	for num := 2; num <= max; num++ {
		isPrime := true
		for i := 2; i*i <= num; i++ {
			if num%i == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			count++
		}
	}
	return count
}

// MemoryUsage is a snapshot of heap figures around a memory workload run.
type MemoryUsage struct {
	InitialHeapMB      int
	PeakHeapMB         int
	AfterCleanupHeapMB int
	HeapGrowthMB       int
	SysMB              int
}

// MemoryResult holds the metrics of one memory workload run.
type MemoryResult struct {
	Duration       time.Duration
	AllocationTime time.Duration
	OperationTime  time.Duration
	SizeMB         int
	Operations     int
	Usage          MemoryUsage
}

// Memory allocates sizeMB megabytes in 1 MiB chunks, touches every
// thousandth byte, then performs random single-byte read-modify-write
// operations across the chunks. Heap usage is sampled before, at peak,
// and after releasing the chunks.
func Memory(sizeMB, operations int) MemoryResult {
	start := time.Now()

	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	const chunkSize = 1 << 20
	chunks := make([][]byte, 0, sizeMB)

	allocStart := time.Now()
	for i := 0; i < sizeMB; i++ {
		chunk := make([]byte, chunkSize)
		for j := 0; j < len(chunk); j += 1000 {
			chunk[j] = byte(rand.Intn(256))
		}
		chunks = append(chunks, chunk)
	}
	allocTime := time.Since(allocStart)

	var opResult int
	opStart := time.Now()
	for op := 0; op < operations; op++ {
		chunk := chunks[rand.Intn(len(chunks))]
		pos := rand.Intn(len(chunk))
		chunk[pos] = chunk[pos] + 1
		opResult += int(chunk[pos])
	}
	opTime := time.Since(opStart)
	_ = opResult

	var peak runtime.MemStats
	runtime.ReadMemStats(&peak)

	chunks = nil
	runtime.GC()

	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	return MemoryResult{
		Duration:       time.Since(start),
		AllocationTime: allocTime,
		OperationTime:  opTime,
		SizeMB:         sizeMB,
		Operations:     operations,
		Usage: MemoryUsage{
			InitialHeapMB:      int(before.HeapAlloc >> 20),
			PeakHeapMB:         int(peak.HeapAlloc >> 20),
			AfterCleanupHeapMB: int(after.HeapAlloc >> 20),
			HeapGrowthMB:       int(peak.HeapAlloc>>20) - int(before.HeapAlloc>>20),
			SysMB:              int(peak.Sys >> 20),
		},
	}
}

// QueryFunc runs one probe query for the latency workload. The offset
// varies per query so repeated probes do not all hit the same rows.
type QueryFunc func(ctx context.Context, offset int) error

// LatencyResult holds the metrics of one latency workload run.
type LatencyResult struct {
	TotalDuration time.Duration
	DBTotal       time.Duration
	NetworkDelay  time.Duration
	QueryCount    int
	Parallel      bool
	QueryTimes    []time.Duration
	AvgQuery      time.Duration
	MinQuery      time.Duration
	MaxQuery      time.Duration
}

// Latency runs queryCount probe queries sequentially or in parallel and
// optionally sleeps for delay afterwards to simulate downstream network
// time. A failing query falls back to a 10ms sleep so the probe still
// produces a timing sample.
func Latency(ctx context.Context, queryCount int, parallel bool, delay time.Duration, query QueryFunc) LatencyResult {
	start := time.Now()

	times := make([]time.Duration, queryCount)
	dbStart := time.Now()

	probe := func(i int) time.Duration {
		qStart := time.Now()
		if err := query(ctx, i*5); err != nil {
			time.Sleep(10 * time.Millisecond)
		}
		return time.Since(qStart)
	}

	if parallel {
		done := make(chan struct{})
		for i := 0; i < queryCount; i++ {
			go func(i int) {
				times[i] = probe(i)
				done <- struct{}{}
			}(i)
		}
		for i := 0; i < queryCount; i++ {
			<-done
		}
	} else {
		for i := 0; i < queryCount; i++ {
			times[i] = probe(i)
		}
	}

	dbTotal := time.Since(dbStart)

	var slept time.Duration
	if delay > 0 {
		delayStart := time.Now()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
		slept = time.Since(delayStart)
	}

	var sum, minQ, maxQ time.Duration
	for i, d := range times {
		sum += d
		if i == 0 || d < minQ {
			minQ = d
		}
		if d > maxQ {
			maxQ = d
		}
	}
	var avg time.Duration
	if queryCount > 0 {
		avg = sum / time.Duration(queryCount)
	}

	return LatencyResult{
		TotalDuration: time.Since(start),
		DBTotal:       dbTotal,
		NetworkDelay:  slept,
		QueryCount:    queryCount,
		Parallel:      parallel,
		QueryTimes:    times,
		AvgQuery:      avg,
		MinQuery:      minQ,
		MaxQuery:      maxQ,
	}
}
