package metrics

import (
	"testing"
	"time"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	if reg == nil {
		t.Fatal("expected non-nil registry")
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(mfs) == 0 {
		t.Error("expected go runtime metrics to be registered")
	}
}

// gatherValue returns the first sample of the named family.
func gatherValue(t *testing.T, reg *Registry, name string) (float64, bool) {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		m := mf.GetMetric()[0]
		if g := m.GetGauge(); g != nil {
			return g.GetValue(), true
		}
		if c := m.GetCounter(); c != nil {
			return c.GetValue(), true
		}
	}
	return 0, false
}

func TestRunnerMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewRunnerMetrics(reg)

	m.RecordRun(50*time.Millisecond, 4)
	m.RecordRun(10*time.Millisecond, 2)

	if got, ok := gatherValue(t, reg, "strake_backtest_runs_total"); !ok || got != 2 {
		t.Errorf("runs = %v (found %v), want 2", got, ok)
	}
	if got, ok := gatherValue(t, reg, "strake_backtest_operations_total"); !ok || got != 6 {
		t.Errorf("operations = %v (found %v), want 6", got, ok)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "strake_backtest_duration_seconds" {
			found = true
			if n := mf.GetMetric()[0].GetHistogram().GetSampleCount(); n != 2 {
				t.Errorf("duration sample count = %d, want 2", n)
			}
		}
	}
	if !found {
		t.Error("expected strake_backtest_duration_seconds histogram")
	}
}
