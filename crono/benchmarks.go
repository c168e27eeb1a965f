// =======================
// crono/benchmarks.go
// =======================

package crono

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

// BenchmarkInfo holds performance metrics for one mode and width.
type BenchmarkInfo struct {
	Mode        string        `json:"mode"`
	BitStrength int           `json:"bit_strength"`
	DataSize    int           `json:"data_size_bytes"`
	ComputeTime time.Duration `json:"compute_time"`
	Throughput  float64       `json:"throughput_bytes_per_second"`
	WordRate    float64       `json:"words_per_second"`
}

// BenchmarkHasher times every mode at every bit strength with binding disabled.
func BenchmarkHasher(h *Hasher, data []byte, iterations int) []BenchmarkInfo {
	if iterations < 1 {
		iterations = 1
	}
	modes := []Mode{Fast, Balanced, Secure, Entropic}
	results := make([]BenchmarkInfo, 0, len(modes)*len(BitStrengths))

	for _, mode := range modes {
		for _, bits := range BitStrengths {
			req := Request{Input: data, Mode: mode, BitStrength: bits}

			start := time.Now()
			for i := 0; i < iterations; i++ {
				h.Hash(req)
			}
			duration := time.Since(start)
			seconds := duration.Seconds()
			if seconds <= 0 {
				seconds = 1e-9
			}

			results = append(results, BenchmarkInfo{
				Mode:        mode.String(),
				BitStrength: int(bits),
				DataSize:    len(data),
				ComputeTime: duration / time.Duration(iterations),
				Throughput:  float64(len(data)*iterations) / seconds,
				WordRate:    float64(bits.Words()*iterations) / seconds,
			})
		}
	}
	return results
}

// PrintBenchmarkResults writes the results as a table.
func PrintBenchmarkResults(w io.Writer, results []BenchmarkInfo) {
	fmt.Fprintln(w, "CronoHash Performance Benchmark Results")
	fmt.Fprintln(w, "=======================================")
	fmt.Fprintf(w, "%-9s | %-5s | %-12s | %-12s | %-12s\n",
		"Mode", "Bits", "Time/Hash", "Throughput", "Words/s")
	fmt.Fprintln(w, "----------|-------|--------------|--------------|-------------")

	for _, r := range results {
		fmt.Fprintf(w, "%-9s | %-5d | %-12s | %-12s | %-12s\n",
			r.Mode,
			r.BitStrength,
			r.ComputeTime.String(),
			humanize.Bytes(uint64(r.Throughput))+"/s",
			humanize.SIWithDigits(r.WordRate, 1, ""))
	}
}
