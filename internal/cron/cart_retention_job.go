package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"github.com/ecofinds/ecofinds-backend/pkg/outbox"
	"github.com/ecofinds/ecofinds-backend/pkg/outbox/payloads"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const (
	defaultCartRetention = 30 * 24 * time.Hour
	cartRetentionBatch   = 500
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type staleCartReader interface {
	FindStaleActive(ctx context.Context, cutoff time.Time, limit int) ([]models.Cart, error)
}

// CartExpirer flips a cart's lifecycle status inside the caller's transaction.
type CartExpirer interface {
	UpdateStatus(ctx context.Context, cartID uuid.UUID, status enums.CartStatus) error
}

// CartExpirerFactory binds an expirer to a transaction handle.
type CartExpirerFactory func(tx *gorm.DB) CartExpirer

// CartRetentionJobParams configure the abandoned-cart cleanup.
type CartRetentionJobParams struct {
	Logger         *logger.Logger
	DB             txRunner
	Carts          staleCartReader
	ExpirerFactory CartExpirerFactory
	Outbox         outboxEmitter
	Retention      time.Duration
}

// NewCartRetentionJob builds the job that expires carts untouched past
// the retention window.
func NewCartRetentionJob(params CartRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart reader required")
	}
	if params.ExpirerFactory == nil {
		return nil, fmt.Errorf("cart expirer factory required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox service required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultCartRetention
	}
	return &cartRetentionJob{
		logg:           params.Logger,
		db:             params.DB,
		carts:          params.Carts,
		expirerFactory: params.ExpirerFactory,
		outbox:         params.Outbox,
		retention:      retention,
		now:            time.Now,
	}, nil
}

type cartRetentionJob struct {
	logg           *logger.Logger
	db             txRunner
	carts          staleCartReader
	expirerFactory CartExpirerFactory
	outbox         outboxEmitter
	retention      time.Duration
	now            func() time.Time
}

func (j *cartRetentionJob) Name() string { return "cart-retention" }

func (j *cartRetentionJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	stale, err := j.carts.FindStaleActive(ctx, cutoff, cartRetentionBatch)
	if err != nil {
		return fmt.Errorf("query stale carts: %w", err)
	}

	expired := 0
	var errs []error
	for _, record := range stale {
		if err := j.expireCart(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("expire cart %s: %w", record.ID, err))
			continue
		}
		expired++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":  cutoff,
		"found":   len(stale),
		"expired": expired,
		"failed":  len(errs),
	})
	j.logg.Info(logCtx, "cart retention cleanup complete")
	return multierr.Combine(errs...)
}

// expireCart flips the cart status and records the event in one
// transaction so the outbox row never outlives a rolled-back status
// change.
func (j *cartRetentionJob) expireCart(ctx context.Context, record models.Cart) error {
	now := j.now().UTC()
	return j.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := j.expirerFactory(tx).UpdateStatus(ctx, record.ID, enums.CartStatusExpired); err != nil {
			return err
		}
		event := outbox.DomainEvent{
			EventType:     enums.EventCartExpired,
			AggregateType: enums.AggregateCart,
			AggregateID:   record.ID,
			Version:       1,
			OccurredAt:    now,
			Data: payloads.CartExpiredEvent{
				CartID:    record.ID,
				OwnerID:   record.OwnerID,
				LineCount: len(record.Lines),
				ExpiredAt: now,
			},
		}
		return j.outbox.Emit(ctx, tx, event)
	})
}
