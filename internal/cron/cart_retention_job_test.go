package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"github.com/ecofinds/ecofinds-backend/pkg/outbox"
	"github.com/ecofinds/ecofinds-backend/pkg/outbox/payloads"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func TestCartRetentionJobExpiresStaleCarts(t *testing.T) {
	now := time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)
	stale := models.Cart{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Status:  enums.CartStatusActive,
		Lines:   []models.CartLine{{ID: uuid.New()}, {ID: uuid.New()}},
	}
	reader := &fakeStaleCartReader{carts: []models.Cart{stale}}
	expirer := &fakeCartExpirer{}
	emitter := &fakeCartOutbox{}
	job := newCartRetentionJob(t, reader, expirer, emitter)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.Add(-defaultCartRetention)
	if !reader.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, reader.lastCutoff)
	}
	if len(expirer.expired) != 1 || expirer.expired[0] != stale.ID {
		t.Fatalf("expected cart %s expired, got %v", stale.ID, expirer.expired)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("expected one event, got %d", len(emitter.events))
	}
	event := emitter.events[0]
	if event.EventType != enums.EventCartExpired {
		t.Fatalf("unexpected event type %s", event.EventType)
	}
	payload, ok := event.Data.(payloads.CartExpiredEvent)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Data)
	}
	if payload.CartID != stale.ID || payload.OwnerID != stale.OwnerID || payload.LineCount != 2 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestCartRetentionJobNoStaleCarts(t *testing.T) {
	reader := &fakeStaleCartReader{}
	expirer := &fakeCartExpirer{}
	emitter := &fakeCartOutbox{}
	job := newCartRetentionJob(t, reader, expirer, emitter)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(expirer.expired) != 0 || len(emitter.events) != 0 {
		t.Fatal("expected no work")
	}
}

func TestCartRetentionJobContinuesPastFailures(t *testing.T) {
	first := models.Cart{ID: uuid.New(), OwnerID: uuid.New(), Status: enums.CartStatusActive}
	second := models.Cart{ID: uuid.New(), OwnerID: uuid.New(), Status: enums.CartStatusActive}
	reader := &fakeStaleCartReader{carts: []models.Cart{first, second}}
	expirer := &fakeCartExpirer{failFor: first.ID}
	emitter := &fakeCartOutbox{}
	job := newCartRetentionJob(t, reader, expirer, emitter)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if len(expirer.expired) != 1 || expirer.expired[0] != second.ID {
		t.Fatalf("expected second cart still expired, got %v", expirer.expired)
	}
	if len(emitter.events) != 1 {
		t.Fatalf("expected one event, got %d", len(emitter.events))
	}
}

func newCartRetentionJob(t *testing.T, reader *fakeStaleCartReader, expirer *fakeCartExpirer, emitter *fakeCartOutbox) *cartRetentionJob {
	t.Helper()
	jobIface, err := NewCartRetentionJob(CartRetentionJobParams{
		Logger:         logger.New(logger.Options{ServiceName: "test"}),
		DB:             cartRetentionTxRunner{},
		Carts:          reader,
		ExpirerFactory: func(tx *gorm.DB) CartExpirer { return expirer },
		Outbox:         emitter,
	})
	if err != nil {
		t.Fatalf("NewCartRetentionJob: %v", err)
	}
	job, ok := jobIface.(*cartRetentionJob)
	if !ok {
		t.Fatalf("expected cartRetentionJob, got %T", jobIface)
	}
	return job
}

type cartRetentionTxRunner struct{}

func (cartRetentionTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

type fakeStaleCartReader struct {
	carts      []models.Cart
	err        error
	lastCutoff time.Time
}

func (f *fakeStaleCartReader) FindStaleActive(ctx context.Context, cutoff time.Time, limit int) ([]models.Cart, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	return f.carts, nil
}

type fakeCartExpirer struct {
	failFor uuid.UUID
	expired []uuid.UUID
}

func (f *fakeCartExpirer) UpdateStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error {
	if f.failFor == cartID {
		return errors.New("update failed")
	}
	f.expired = append(f.expired, cartID)
	return nil
}

type fakeCartOutbox struct {
	events []outbox.DomainEvent
}

func (f *fakeCartOutbox) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}
