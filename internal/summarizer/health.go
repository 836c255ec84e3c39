package summarizer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/localrivet/lexsummary/internal/telemetry"
)

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	// StatusHealthy indicates a component is fully operational
	StatusHealthy HealthStatus = "healthy"

	// StatusDegraded indicates a component is operational but with reduced capability
	StatusDegraded HealthStatus = "degraded"

	// StatusUnhealthy indicates a component is not operational
	StatusUnhealthy HealthStatus = "unhealthy"
)

const (
	// nonConvergenceLimit is the share of ranked requests that may hit the
	// iteration cap before the ranker is reported degraded.
	nonConvergenceLimit = 0.25

	// failureLimit is the share of requests that may fail before the
	// summarizer is reported unhealthy.
	failureLimit = 0.5
)

// HealthReport contains information about the current health of the summarizer
type HealthReport struct {
	Status             HealthStatus       `json:"status"`
	Timestamp          time.Time          `json:"timestamp"`
	Ranker             string             `json:"ranker"`
	Components         map[string]string  `json:"components"`
	StageTimes         map[string]float64 `json:"stage_times_ms"`
	CacheStats         map[string]int64   `json:"cache_stats"`
	TotalRequests      int64              `json:"total_requests"`
	FailedRequests     int64              `json:"failed_requests"`
	RejectedRequests   int64              `json:"rejected_requests"`
	NonConvergenceRate float64            `json:"non_convergence_rate"`
	AverageIterations  float64            `json:"average_iterations"`
	Version            string             `json:"version"`
}

// Version is reported in health reports.
var Version = "0.1.0"

// CreateHealthReport generates a health report for the summarizer
func CreateHealthReport(summarizer *LexRankSummarizer) (*HealthReport, error) {
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer is nil")
	}

	m := summarizer.GetMetrics()
	if m == nil {
		return nil, fmt.Errorf("metrics collector is nil")
	}

	total := m.GetCounter(telemetry.MetricRequests)
	failed := m.GetCounter(telemetry.MetricRequestsFailed)
	rejected := m.GetCounter(telemetry.MetricInvalidRequests)
	nonConverged := m.GetCounter(telemetry.MetricNonConvergence)

	// Only requests that reached the ranker can fail to converge
	ranked := total - failed - rejected - m.GetCounter(telemetry.MetricEmptyInputs)
	var nonConvergenceRate, avgIterations float64
	if ranked > 0 {
		nonConvergenceRate = float64(nonConverged) / float64(ranked)
		avgIterations = float64(m.GetCounter(telemetry.MetricIterations)) / float64(ranked)
	}

	components := map[string]string{
		"normalizer": string(StatusHealthy),
		"ranker":     string(StatusHealthy),
		"cache":      string(StatusHealthy),
	}
	status := StatusHealthy

	if summarizer.NormalizerError() != nil {
		components["normalizer"] = string(StatusDegraded)
		status = StatusDegraded
	}
	if nonConvergenceRate > nonConvergenceLimit {
		components["ranker"] = string(StatusDegraded)
		status = StatusDegraded
	}
	if m.GetCounter(telemetry.MetricCacheErrors) > 0 {
		components["cache"] = string(StatusDegraded)
		status = StatusDegraded
	}
	if total > 0 && float64(failed)/float64(total) > failureLimit {
		status = StatusUnhealthy
	}

	stageTimes := map[string]float64{
		"segment": millis(m.GetTimerAverage(telemetry.MetricTimeSegment)),
		"weights": millis(m.GetTimerAverage(telemetry.MetricTimeWeights)),
		"graph":   millis(m.GetTimerAverage(telemetry.MetricTimeGraph)),
		"rank":    millis(m.GetTimerAverage(telemetry.MetricTimeRank)),
		"total":   millis(m.GetTimerAverage(telemetry.MetricTimeTotal)),
		"p95":     millis(m.GetTimerP95(telemetry.MetricTimeTotal)),
	}

	cacheStats := map[string]int64{
		"hits":   m.GetCounter(telemetry.MetricCacheHits),
		"misses": m.GetCounter(telemetry.MetricCacheMisses),
		"errors": m.GetCounter(telemetry.MetricCacheErrors),
		"size":   int64(m.GetGauge(telemetry.MetricCacheSize)),
	}

	return &HealthReport{
		Status:             status,
		Timestamp:          time.Now(),
		Ranker:             summarizer.Name(),
		Components:         components,
		StageTimes:         stageTimes,
		CacheStats:         cacheStats,
		TotalRequests:      total,
		FailedRequests:     failed,
		RejectedRequests:   rejected,
		NonConvergenceRate: nonConvergenceRate,
		AverageIterations:  avgIterations,
		Version:            Version,
	}, nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// CreateHealthReportJSON generates a JSON health report for the summarizer
func CreateHealthReportJSON(summarizer *LexRankSummarizer) (string, error) {
	report, err := CreateHealthReport(summarizer)
	if err != nil {
		return "", err
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal health report: %w", err)
	}

	return string(reportJSON), nil
}

// ResetMetrics resets all metrics for the summarizer
func ResetMetrics(summarizer *LexRankSummarizer) error {
	if summarizer == nil {
		return fmt.Errorf("summarizer is nil")
	}

	m := summarizer.GetMetrics()
	if m == nil {
		return fmt.Errorf("metrics collector is nil")
	}

	m.Reset()
	return nil
}
