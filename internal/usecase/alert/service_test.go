package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "container-tracker/internal/domain/alert"
	"container-tracker/internal/logger"

	"github.com/google/uuid"
)

func init() {
	_ = logger.Init("test")
}

type fakeAlertRepo struct {
	alerts map[uuid.UUID]*domain.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{alerts: map[uuid.UUID]*domain.Alert{}}
}

func (f *fakeAlertRepo) Insert(_ context.Context, a *domain.Alert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	f.alerts[a.ID] = &cp
	return nil
}

func (f *fakeAlertRepo) List(_ context.Context, accountID uuid.UUID, fl domain.Filter) ([]*domain.Alert, error) {
	var out []*domain.Alert
	for _, a := range f.alerts {
		if a.AccountID != accountID {
			continue
		}
		if fl.Status == "pending" && a.Acknowledged() {
			continue
		}
		if fl.Status == "resolved" && !a.Acknowledged() {
			continue
		}
		if fl.ContainerID != "" && a.ContainerID != fl.ContainerID {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeAlertRepo) Acknowledge(_ context.Context, accountID, id uuid.UUID, userID *string) (*domain.Alert, error) {
	a, ok := f.alerts[id]
	if !ok || a.AccountID != accountID || a.Acknowledged() {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	a.AcknowledgedAt = &now
	a.AcknowledgedBy = userID
	cp := *a
	return &cp, nil
}

func (f *fakeAlertRepo) Delete(_ context.Context, accountID, id uuid.UUID) error {
	a, ok := f.alerts[id]
	if !ok || a.AccountID != accountID {
		return domain.ErrNotFound
	}
	delete(f.alerts, id)
	return nil
}

func TestListAlertsFiltersByStatus(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo)
	acct := uuid.New()

	pending := &domain.Alert{AccountID: acct, ContainerID: "MSCU1234567", AlertType: domain.TempHigh, Severity: domain.SeverityHigh}
	_ = repo.Insert(context.Background(), pending)

	resolvedAt := time.Now()
	resolved := &domain.Alert{AccountID: acct, ContainerID: "MAEU7654321", AlertType: domain.TempLow, Severity: domain.SeverityHigh, AcknowledgedAt: &resolvedAt}
	_ = repo.Insert(context.Background(), resolved)

	got, err := svc.ListAlerts(context.Background(), acct, &ListAlertsRequest{Status: "pending"})
	if err != nil {
		t.Fatalf("ListAlerts: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("pending alerts = %d, want 1", len(got))
	}
	if got[0].ContainerID != "MSCU1234567" {
		t.Errorf("pending alert container = %q", got[0].ContainerID)
	}
	if got[0].Acknowledged {
		t.Error("pending alert reported as acknowledged")
	}
}

func TestListAlertsRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newFakeAlertRepo())

	_, err := svc.ListAlerts(context.Background(), uuid.New(), &ListAlertsRequest{Status: "open"})
	if err == nil {
		t.Fatal("expected validation error for unknown status")
	}
}

func TestAcknowledgeIsOneShot(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo)
	acct := uuid.New()

	a := &domain.Alert{AccountID: acct, ContainerID: "MSCU1234567", AlertType: domain.TempHigh, Severity: domain.SeverityHigh}
	_ = repo.Insert(context.Background(), a)

	user := "ops@example.com"
	first, err := svc.Acknowledge(context.Background(), acct, a.ID, &user)
	if err != nil {
		t.Fatalf("first acknowledge: %v", err)
	}
	if !first.Acknowledged || first.AcknowledgedBy == nil || *first.AcknowledgedBy != user {
		t.Errorf("first acknowledge = %+v", first)
	}

	if _, err := svc.Acknowledge(context.Background(), acct, a.ID, &user); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second acknowledge err = %v, want ErrNotFound", err)
	}
}

func TestAcknowledgeScopedToAccount(t *testing.T) {
	repo := newFakeAlertRepo()
	svc := NewService(repo)

	a := &domain.Alert{AccountID: uuid.New(), ContainerID: "MSCU1234567", AlertType: domain.TempHigh, Severity: domain.SeverityHigh}
	_ = repo.Insert(context.Background(), a)

	if _, err := svc.Acknowledge(context.Background(), uuid.New(), a.ID, nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("cross-account acknowledge err = %v, want ErrNotFound", err)
	}
}
