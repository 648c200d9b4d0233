package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"devinsights/internal/benchmark"
	"devinsights/internal/store"
)

// Benchmarks groups the synthetic load endpoints used for comparing
// deployment platforms. They accept parameters via query string or JSON
// body and report per-instance metadata so load-test reports can tell
// cold starts and scale-out events apart.
type Benchmarks struct {
	instance *benchmark.Instance
	posts    *store.PostStore
}

// NewBenchmarks creates the benchmark handler group.
func NewBenchmarks(instance *benchmark.Instance, posts *store.PostStore) *Benchmarks {
	return &Benchmarks{instance: instance, posts: posts}
}

// params reads workload parameters from the query string, falling back to
// a JSON object body for POST requests.
type params map[string]any

func readParams(r *http.Request) params {
	p := params{}
	if r.Body != nil {
		var body map[string]any
		if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16)).Decode(&body); err == nil {
			p = body
		}
	}
	return p
}

// intParam resolves an integer parameter: query string first, then JSON
// body, then the default.
func (p params) intParam(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if v, ok := p[name]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case string:
			if parsed, err := strconv.Atoi(n); err == nil {
				return parsed
			}
		}
	}
	return def
}

func (p params) boolParam(r *http.Request, name string) bool {
	if v := r.URL.Query().Get(name); v != "" {
		return v == "true"
	}
	if v, ok := p[name]; ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			return b == "true"
		}
	}
	return false
}

// platform is the instance metadata block attached to every benchmark
// response.
func (b *Benchmarks) platform(requestNumber int64) map[string]any {
	return map[string]any{
		"type":           "kubernetes",
		"instance_id":    b.instance.ID,
		"pod_name":       b.instance.Hostname,
		"node_name":      b.instance.NodeName,
		"cold_start":     requestNumber == 1,
		"request_number": requestNumber,
	}
}

func (b *Benchmarks) setInstanceHeaders(w http.ResponseWriter, requestNumber int64) {
	w.Header().Set("X-Instance-ID", b.instance.ID)
	w.Header().Set("X-Pod-Name", b.instance.Hostname)
	w.Header().Set("X-Cold-Start", strconv.FormatBool(requestNumber == 1))
}

// CPU handles GET|POST /api/benchmark/cpu.
func (b *Benchmarks) CPU(w http.ResponseWriter, r *http.Request) {
	n := b.instance.Count("cpu")
	p := readParams(r)

	iterations := benchmark.Clamp(p.intParam(r, "iterations", 1_000_000), 1, benchmark.MaxIterations)
	complexity := benchmark.Clamp(p.intParam(r, "complexity", 1), 1, benchmark.MaxComplexity)

	res := benchmark.CPU(iterations, complexity)

	b.setInstanceHeaders(w, n)
	writeJSON(w, http.StatusOK, map[string]any{
		"test": "cpu",
		"metrics": map[string]any{
			"duration_ms":           res.Duration.Milliseconds(),
			"iterations":            res.Iterations,
			"complexity":            res.Complexity,
			"operations_per_second": res.OpsPerSec,
			"prime_count":           res.PrimeCount,
			"cpu_result":            res.FloatResult,
		},
		"platform":  b.platform(n),
		"timestamp": timestamp(),
	})
}

// Memory handles GET|POST /api/benchmark/memory.
func (b *Benchmarks) Memory(w http.ResponseWriter, r *http.Request) {
	n := b.instance.Count("memory")
	p := readParams(r)

	sizeMB := benchmark.Clamp(p.intParam(r, "size_mb", 10), 1, benchmark.MaxSizeMB)
	operations := benchmark.Clamp(p.intParam(r, "operations", 100), 1, benchmark.MaxOperations)

	res := benchmark.Memory(sizeMB, operations)

	b.setInstanceHeaders(w, n)
	writeJSON(w, http.StatusOK, map[string]any{
		"test": "memory",
		"metrics": map[string]any{
			"duration_ms":          res.Duration.Milliseconds(),
			"allocation_time_ms":   res.AllocationTime.Milliseconds(),
			"operation_time_ms":    res.OperationTime.Milliseconds(),
			"size_allocated_mb":    res.SizeMB,
			"operations_performed": res.Operations,
			"memory_usage": map[string]int{
				"initial_heap_mb":       res.Usage.InitialHeapMB,
				"peak_heap_mb":          res.Usage.PeakHeapMB,
				"after_cleanup_heap_mb": res.Usage.AfterCleanupHeapMB,
				"heap_growth_mb":        res.Usage.HeapGrowthMB,
				"sys_mb":                res.Usage.SysMB,
			},
		},
		"platform":  b.platform(n),
		"timestamp": timestamp(),
	})
}

// Latency handles GET|POST /api/benchmark/latency.
func (b *Benchmarks) Latency(w http.ResponseWriter, r *http.Request) {
	n := b.instance.Count("latency")
	p := readParams(r)

	queries := benchmark.Clamp(p.intParam(r, "db_queries", 5), 1, benchmark.MaxDBQueries)
	delayMS := benchmark.Clamp(p.intParam(r, "delay_ms", 0), 0, benchmark.MaxDelayMS)
	parallel := p.boolParam(r, "parallel")

	res := benchmark.Latency(r.Context(), queries, parallel,
		time.Duration(delayMS)*time.Millisecond,
		func(ctx context.Context, offset int) error {
			_, err := b.posts.RecentTitles(5, offset)
			return err
		})

	mode := "sequential"
	if res.Parallel {
		mode = "parallel"
	}

	queryTimes := make([]int64, len(res.QueryTimes))
	for i, d := range res.QueryTimes {
		queryTimes[i] = d.Milliseconds()
	}

	b.setInstanceHeaders(w, n)
	w.Header().Set("X-Total-Latency", strconv.FormatInt(res.TotalDuration.Milliseconds(), 10))
	writeJSON(w, http.StatusOK, map[string]any{
		"test": "latency",
		"metrics": map[string]any{
			"total_duration_ms":    res.TotalDuration.Milliseconds(),
			"db_total_ms":          res.DBTotal.Milliseconds(),
			"network_delay_ms":     res.NetworkDelay.Milliseconds(),
			"query_count":          res.QueryCount,
			"query_execution_mode": mode,
			"query_stats": map[string]any{
				"avg_ms":         res.AvgQuery.Milliseconds(),
				"min_ms":         res.MinQuery.Milliseconds(),
				"max_ms":         res.MaxQuery.Milliseconds(),
				"all_queries_ms": queryTimes,
			},
			"overhead_ms": (res.TotalDuration - res.DBTotal - res.NetworkDelay).Milliseconds(),
		},
		"platform": map[string]any{
			"type":            "kubernetes",
			"instance_id":     b.instance.ID,
			"pod_name":        b.instance.Hostname,
			"node_name":       b.instance.NodeName,
			"cold_start":      n == 1,
			"warm_instance":   b.instance.Warm(n),
			"request_number":  n,
			"instance_age_ms": b.instance.Age().Milliseconds(),
		},
		"timestamp": timestamp(),
	})
}

// Health handles GET /api/benchmark/health.
func (b *Benchmarks) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"endpoints":   []string{"/cpu", "/memory", "/latency"},
		"instance_id": b.instance.ID,
		"timestamp":   timestamp(),
	})
}
