package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveSync(t *testing.T) {
	ObserveSync("observe-test", "manual", 2*time.Second, nil)
	ObserveSync("observe-test", "manual", 3*time.Second, errors.New("push rejected"))

	if got := testutil.ToFloat64(syncRuns.WithLabelValues("observe-test", "manual", "success")); got != 1 {
		t.Errorf("success runs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(syncRuns.WithLabelValues("observe-test", "manual", "failure")); got != 1 {
		t.Errorf("failure runs = %v, want 1", got)
	}

	// Both runs contribute their real elapsed time to the histogram
	var hist dto.Metric
	if err := syncDuration.WithLabelValues("observe-test").(prometheus.Metric).Write(&hist); err != nil {
		t.Fatalf("failed to read duration histogram: %v", err)
	}
	if got := hist.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("duration samples = %d, want 2", got)
	}
	if got := hist.GetHistogram().GetSampleSum(); got != 5 {
		t.Errorf("duration sum = %v, want 5", got)
	}

	var gauge dto.Metric
	if err := lastSuccess.WithLabelValues("observe-test").Write(&gauge); err != nil {
		t.Fatalf("failed to read last success gauge: %v", err)
	}
	if gauge.GetGauge().GetValue() == 0 {
		t.Error("last success timestamp was not set")
	}
}

func TestObserveSync_FailureDoesNotTouchLastSuccess(t *testing.T) {
	ObserveSync("failure-only", "webhook", time.Second, errors.New("boom"))

	var gauge dto.Metric
	if err := lastSuccess.WithLabelValues("failure-only").Write(&gauge); err != nil {
		t.Fatalf("failed to read last success gauge: %v", err)
	}
	if got := gauge.GetGauge().GetValue(); got != 0 {
		t.Errorf("last success timestamp = %v, want 0 for a mirror that never succeeded", got)
	}
}
