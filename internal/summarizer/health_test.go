package summarizer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/localrivet/lexsummary/internal/telemetry"
)

func TestCreateHealthReport(t *testing.T) {
	s := newTestSummarizer(t, nil)

	if _, err := s.SummarizeDetailed(context.Background(), article, 2); err != nil {
		t.Fatalf("SummarizeDetailed() error = %v", err)
	}
	s.SummarizeDetailed(context.Background(), "", 2)
	s.SummarizeDetailed(context.Background(), article, 0)

	report, err := CreateHealthReport(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.Status != StatusHealthy {
		t.Errorf("Expected status to be healthy, got %s", report.Status)
	}
	if report.TotalRequests != 3 {
		t.Errorf("Expected 3 total requests, got %d", report.TotalRequests)
	}
	if report.RejectedRequests != 1 {
		t.Errorf("Expected 1 rejected request, got %d", report.RejectedRequests)
	}
	if report.Ranker != "lexrank" {
		t.Errorf("Expected lexrank ranker, got %s", report.Ranker)
	}
	if report.AverageIterations < 1 {
		t.Errorf("Expected at least one iteration on average, got %v", report.AverageIterations)
	}
	if misses := report.CacheStats["misses"]; misses != 1 {
		t.Errorf("Expected 1 cache miss, got %d", misses)
	}

	jsonReport, err := CreateHealthReportJSON(s)
	if err != nil {
		t.Fatalf("Unexpected JSON error: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(jsonReport), &parsed); err != nil {
		t.Fatalf("Failed to parse JSON report: %v", err)
	}
	if parsed["status"] != "healthy" {
		t.Errorf("JSON status = %v, want healthy", parsed["status"])
	}

	if err := ResetMetrics(s); err != nil {
		t.Fatalf("Unexpected error resetting metrics: %v", err)
	}
	if s.GetMetrics().GetCounter(telemetry.MetricRequests) != 0 {
		t.Errorf("Metrics not properly reset")
	}
}

func TestCreateHealthReport_Status(t *testing.T) {
	tests := []struct {
		name      string
		record    func(m *telemetry.MetricsCollector)
		want      HealthStatus
		component string
	}{
		{
			name: "frequent non-convergence",
			record: func(m *telemetry.MetricsCollector) {
				m.IncrementCounter(telemetry.MetricRequests, 10)
				m.IncrementCounter(telemetry.MetricNonConvergence, 3)
			},
			want:      StatusDegraded,
			component: "ranker",
		},
		{
			name: "occasional non-convergence",
			record: func(m *telemetry.MetricsCollector) {
				m.IncrementCounter(telemetry.MetricRequests, 10)
				m.IncrementCounter(telemetry.MetricNonConvergence, 2)
			},
			want: StatusHealthy,
		},
		{
			name: "cache errors",
			record: func(m *telemetry.MetricsCollector) {
				m.IncrementCounter(telemetry.MetricRequests, 1)
				m.IncrementCounter(telemetry.MetricCacheErrors, 1)
			},
			want:      StatusDegraded,
			component: "cache",
		},
		{
			name: "mostly failing",
			record: func(m *telemetry.MetricsCollector) {
				m.IncrementCounter(telemetry.MetricRequests, 4)
				m.IncrementCounter(telemetry.MetricRequestsFailed, 3)
				m.RecordTimer(telemetry.MetricTimeTotal, 30*time.Second)
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSummarizer(t, nil)
			tt.record(s.GetMetrics())

			report, err := CreateHealthReport(s)
			if err != nil {
				t.Fatalf("CreateHealthReport() error = %v", err)
			}
			if report.Status != tt.want {
				t.Errorf("Status = %s, want %s", report.Status, tt.want)
			}
			if tt.component != "" && report.Components[tt.component] != string(StatusDegraded) {
				t.Errorf("Components[%s] = %s, want degraded", tt.component, report.Components[tt.component])
			}
		})
	}
}

func TestCreateHealthReport_Nil(t *testing.T) {
	if _, err := CreateHealthReport(nil); err == nil {
		t.Errorf("CreateHealthReport(nil) error = nil, want error")
	}
	if err := ResetMetrics(nil); err == nil {
		t.Errorf("ResetMetrics(nil) error = nil, want error")
	}
}
