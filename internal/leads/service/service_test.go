package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"rentcar-backend/internal/events"
	"rentcar-backend/internal/leads/repository"
	"rentcar-backend/platform/apperr"
	"rentcar-backend/platform/logger"
)

type stubRepo struct {
	lead      repository.Lead
	oldStatus string
	updateErr error

	gotStatus string
	gotNotes  *string
}

func (r *stubRepo) CreateLead(ctx context.Context, p repository.CreateLeadParams) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *stubRepo) ListLeads(ctx context.Context, status string, limit int) ([]repository.Lead, error) {
	return []repository.Lead{r.lead}, nil
}

func (r *stubRepo) GetLeadByID(ctx context.Context, id uuid.UUID) (repository.Lead, error) {
	return r.lead, nil
}

func (r *stubRepo) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string, internalNotes *string) (string, error) {
	if r.updateErr != nil {
		return "", r.updateErr
	}
	r.gotStatus = status
	r.gotNotes = internalNotes
	return r.oldStatus, nil
}

func (r *stubRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	return map[string]int{repository.StatusNew: 2}, nil
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(eventName string, handler events.Handler) {}

func newTestService(repo *stubRepo, bus *recordingBus) *Service {
	return NewService(repo, bus, logger.New("development"))
}

func TestListLeadsRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&stubRepo{}, &recordingBus{})

	_, err := svc.ListLeads(context.Background(), "ARCHIVED", 50)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusPublishesTransition(t *testing.T) {
	leadID := uuid.New()
	actorID := uuid.New()
	repo := &stubRepo{
		lead:      repository.Lead{ID: leadID, Status: repository.StatusContacted},
		oldStatus: repository.StatusNew,
	}
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	lead, err := svc.UpdateStatus(context.Background(), actorID, leadID, repository.StatusContacted, nil)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if lead.Status != repository.StatusContacted {
		t.Fatalf("expected status %s, got %s", repository.StatusContacted, lead.Status)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected 1 event, got %d", len(bus.published))
	}
	event, ok := bus.published[0].(events.LeadStatusChanged)
	if !ok {
		t.Fatalf("unexpected event type %T", bus.published[0])
	}
	if event.OldStatus != repository.StatusNew || event.NewStatus != repository.StatusContacted {
		t.Fatalf("unexpected transition %s -> %s", event.OldStatus, event.NewStatus)
	}
	if event.ChangedBy != actorID {
		t.Fatalf("expected actor %s, got %s", actorID, event.ChangedBy)
	}
}

func TestUpdateStatusSameStatusPublishesNothing(t *testing.T) {
	leadID := uuid.New()
	repo := &stubRepo{
		lead:      repository.Lead{ID: leadID, Status: repository.StatusNew},
		oldStatus: repository.StatusNew,
	}
	bus := &recordingBus{}
	svc := newTestService(repo, bus)

	if _, err := svc.UpdateStatus(context.Background(), uuid.New(), leadID, repository.StatusNew, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(bus.published) != 0 {
		t.Fatalf("expected no events, got %d", len(bus.published))
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(&stubRepo{}, &recordingBus{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), "DELETED", nil)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	repo := &stubRepo{updateErr: repository.ErrNotFound}
	svc := newTestService(repo, &recordingBus{})

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), uuid.New(), repository.StatusLost, nil)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
