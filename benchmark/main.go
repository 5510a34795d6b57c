// Package main provides a performance benchmarking tool for the gridcache CLI.
// It measures how long dataset requests take without the cache, on a cold cache
// and on a warm cache, treating the first successful cached run as cold and
// averaging the rest as warm, and writes CSV output for later comparison.
//
// Prerequisites:
// - gridcache binary installed and available in PATH
// - Network access to the nflverse release mirror
//
// Usage: go run benchmark/main.go [cache-dir]
//
//	cache-dir: Scratch directory used as the gridcache cache (wiped between suites)
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Seasons     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	CacheDir    string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Requests    []BenchmarkRequest
}

// BenchmarkRequest is one dataset request to time.
type BenchmarkRequest struct {
	Kind    string
	Seasons string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [cache-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		CacheDir:    os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     4,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Requests: []BenchmarkRequest{
			{Kind: "draft", Seasons: "2015-2024"},
			{Kind: "weekly", Seasons: "2023"},
			{Kind: "weekly", Seasons: "2021-2023"},
			{Kind: "pbp", Seasons: "2023"},
		},
	}

	if _, err := exec.LookPath("gridcache"); err != nil {
		fmt.Printf("Prerequisites check failed: gridcache binary not found in PATH\n")
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// runBenchmarks executes every configured request.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d requests, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Requests), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	results := make([]BenchmarkResult, 0, len(config.Requests))
	for _, req := range config.Requests {
		results = append(results, runBenchmarkSuite(config, req))
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a request.
func runBenchmarkSuite(config BenchmarkConfig, req BenchmarkRequest) BenchmarkResult {
	fmt.Printf("Running %s --seasons %s\n", req.Kind, req.Seasons)

	// No-cache runs all download, so every run counts toward the average
	clearCache(config)
	noCacheAvg := average(runBenchmark(config, req, true, config.NoCacheRuns))

	// Cache runs start empty: the first success is cold and the rest are warm
	clearCache(config)
	cached := runBenchmark(config, req, false, config.CacheRuns)
	coldTimeStr, warmAvg := "TIMEOUT", "TIMEOUT"
	if len(cached) > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cached[0])
		warmAvg = average(cached[1:])
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     req.Kind,
		Seasons:     req.Seasons,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// clearCache empties the scratch cache directory.
func clearCache(config BenchmarkConfig) {
	cmd := exec.Command("gridcache", "cache", "clear", "--yes", "--cache-dir", config.CacheDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	}
}

// average formats the mean of times, or TIMEOUT when no run succeeded.
func average(times []float64) string {
	if len(times) == 0 {
		return "TIMEOUT"
	}
	var sum float64
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.3fs", sum/float64(len(times)))
}

// runBenchmark executes a gridcache request multiple times and returns the durations of successful runs.
func runBenchmark(config BenchmarkConfig, req BenchmarkRequest, forceRefresh bool, numRuns int) []float64 {
	args := []string{
		req.Kind,
		"--seasons", req.Seasons,
		"--cache-dir", config.CacheDir,
		"--workers", fmt.Sprint(config.Workers),
		"--timeout", config.Timeout.String(),
		"--preview", "0",
		"--color", "no",
	}
	if forceRefresh {
		args = append(args, "--force-refresh")
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("gridcache", args...)

		done := make(chan bool, 1)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	return times
}

// isSuccess checks if command output indicates a loaded dataset.
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, " rows ") &&
		(strings.Contains(outputStr, "downloaded") || strings.Contains(outputStr, "from cache"))
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/gridcache_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"dataset", "seasons", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Seasons, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, kind := range []string{"weekly", "pbp", "draft"} {
		fmt.Printf("%s:\n", kind)
		for _, result := range results {
			if result.Dataset == kind {
				fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Seasons, result.NoCacheTime, result.ColdTime, result.WarmTime)
			}
		}
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
