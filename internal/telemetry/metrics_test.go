package telemetry

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMetricsCollector_Counters(t *testing.T) {
	m := NewMetricsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementCounter(MetricRequests, 1)
		}()
	}
	wg.Wait()

	if got := m.GetCounter(MetricRequests); got != 50 {
		t.Errorf("GetCounter() = %d, want 50", got)
	}
	if got := m.GetCounter(MetricNonConvergence); got != 0 {
		t.Errorf("GetCounter(unset) = %d, want 0", got)
	}
}

func TestMetricsCollector_Timers(t *testing.T) {
	m := NewMetricsCollector()

	for i := 1; i <= 20; i++ {
		m.RecordTimer(MetricTimeRank, time.Duration(i)*time.Millisecond)
	}

	if got := m.GetTimerAverage(MetricTimeRank); got != 10500*time.Microsecond {
		t.Errorf("GetTimerAverage() = %v, want 10.5ms", got)
	}
	if got := m.GetTimerP95(MetricTimeRank); got != 20*time.Millisecond {
		t.Errorf("GetTimerP95() = %v, want 20ms", got)
	}
	if got := m.GetTimerAverage("missing"); got != 0 {
		t.Errorf("GetTimerAverage(missing) = %v, want 0", got)
	}

	stop := m.StartTimer(MetricTimeTotal)
	if elapsed := stop(); elapsed < 0 {
		t.Errorf("StartTimer() elapsed = %v", elapsed)
	}
	if m.GetTimerAverage(MetricTimeTotal) < 0 {
		t.Errorf("StartTimer() did not record")
	}
}

func TestMetricsCollector_TimerWindow(t *testing.T) {
	m := NewMetricsCollector()
	for i := 0; i < 150; i++ {
		m.RecordTimer(MetricTimeGraph, time.Second)
	}
	m.mu.RLock()
	n := len(m.timers[MetricTimeGraph])
	m.mu.RUnlock()
	if n != 100 {
		t.Errorf("timer window = %d entries, want 100", n)
	}
}

func TestMetricsCollector_ReportAndReset(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricCacheHits, 3)
	m.SetGauge(MetricCacheSize, 7)
	m.RecordTimer(MetricTimeSegment, time.Millisecond)
	m.RecordTimestamp(MetricLastRequest)

	report := m.GetReport()
	for _, want := range []string{MetricCacheHits + ": 3", MetricCacheSize + ": 7.00", MetricTimeSegment, MetricLastRequest} {
		if !strings.Contains(report, want) {
			t.Errorf("GetReport() missing %q:\n%s", want, report)
		}
	}

	m.Reset()
	if m.GetCounter(MetricCacheHits) != 0 || m.GetGauge(MetricCacheSize) != 0 || m.GetTimeSince(MetricLastRequest) != 0 {
		t.Errorf("Reset() did not clear metrics")
	}
}
