package ingestion

import (
	"context"
	"errors"
	"testing"

	"container-tracker/internal/domain/alert"
	"container-tracker/internal/domain/container"
	"container-tracker/internal/logger"

	"github.com/google/uuid"
)

func init() {
	// The engine logs through the shared logger; tests need it initialized.
	_ = logger.Init("test")
}

func TestEvaluateThresholdBoundaries(t *testing.T) {
	window := container.Thresholds{MinTemp: f64(-5), MaxTemp: f64(10)}

	cases := []struct {
		name     string
		th       container.Thresholds
		tempC    float64
		wantType alert.AlertType
		breached bool
	}{
		{"exactly at max is not a breach", window, 10, "", false},
		{"just above max is TEMP_HIGH", window, 10.01, alert.TempHigh, true},
		{"exactly at min is not a breach", window, -5, "", false},
		{"just below min is TEMP_LOW", window, -5.01, alert.TempLow, true},
		{"inside the window", window, 2, "", false},
		{"missing min disables the check", container.Thresholds{MaxTemp: f64(10)}, 50, "", false},
		{"missing max disables the check", container.Thresholds{MinTemp: f64(-5)}, -50, "", false},
		{"no thresholds configured", container.Thresholds{}, 100, "", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			gotType, msg, breached := Evaluate(c.th, c.tempC)
			if breached != c.breached {
				t.Fatalf("Evaluate(%v) breached = %v, want %v", c.tempC, breached, c.breached)
			}
			if gotType != c.wantType {
				t.Errorf("Evaluate(%v) type = %q, want %q", c.tempC, gotType, c.wantType)
			}
			if breached && msg == "" {
				t.Error("breach must carry a message")
			}
		})
	}
}

type fakeRuleSource struct {
	rules map[string]*container.Rules
	err   error
}

func (f *fakeRuleSource) GetRules(ctx context.Context, containerID string) (*container.Rules, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.rules[containerID]
	if !ok {
		return nil, container.ErrNotFound
	}
	return r, nil
}

type fakeAlertSink struct {
	inserted []*alert.Alert
	err      error
}

func (f *fakeAlertSink) Insert(ctx context.Context, a *alert.Alert) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, a)
	return nil
}

func TestCheckTemperature(t *testing.T) {
	accountID := uuid.New()
	rules := &fakeRuleSource{rules: map[string]*container.Rules{
		"MSCU1234567": {
			AccountID:  accountID,
			Thresholds: container.Thresholds{MinTemp: f64(-5), MaxTemp: f64(10)},
		},
	}}

	t.Run("breach persists one alert with fixed severity", func(t *testing.T) {
		sink := &fakeAlertSink{}
		engine := NewAlertEngine(rules, sink)

		if !engine.CheckTemperature(context.Background(), "MSCU1234567", 12) {
			t.Fatal("expected an alert to be raised")
		}
		if len(sink.inserted) != 1 {
			t.Fatalf("inserted %d alerts, want 1", len(sink.inserted))
		}

		a := sink.inserted[0]
		if a.AlertType != alert.TempHigh {
			t.Errorf("alert_type = %q, want TEMP_HIGH", a.AlertType)
		}
		if a.Severity != alert.SeverityHigh {
			t.Errorf("severity = %d, want %d", a.Severity, alert.SeverityHigh)
		}
		if a.AccountID != accountID {
			t.Error("alert not attributed to the container's account")
		}
	})

	t.Run("repeated breaches are not suppressed", func(t *testing.T) {
		sink := &fakeAlertSink{}
		engine := NewAlertEngine(rules, sink)

		engine.CheckTemperature(context.Background(), "MSCU1234567", 12)
		engine.CheckTemperature(context.Background(), "MSCU1234567", 13)

		if len(sink.inserted) != 2 {
			t.Errorf("inserted %d alerts, want 2 (every breach is logged)", len(sink.inserted))
		}
	})

	t.Run("in-range reading raises nothing", func(t *testing.T) {
		sink := &fakeAlertSink{}
		engine := NewAlertEngine(rules, sink)

		if engine.CheckTemperature(context.Background(), "MSCU1234567", 2) {
			t.Error("no alert expected")
		}
	})

	t.Run("unknown container is skipped quietly", func(t *testing.T) {
		sink := &fakeAlertSink{}
		engine := NewAlertEngine(rules, sink)

		if engine.CheckTemperature(context.Background(), "ZZZZ0000000", 99) {
			t.Error("no alert expected for an unknown container")
		}
	})

	t.Run("persistence failure is swallowed", func(t *testing.T) {
		sink := &fakeAlertSink{err: errors.New("connection refused")}
		engine := NewAlertEngine(rules, sink)

		if engine.CheckTemperature(context.Background(), "MSCU1234567", 12) {
			t.Error("raised = true despite persistence failure")
		}
	})
}
