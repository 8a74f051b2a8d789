package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/ecofinds-backend/internal/cart"
	"github.com/ecofinds/ecofinds-backend/internal/orders"
	"github.com/ecofinds/ecofinds-backend/internal/pricing"
	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/outbox"
	"github.com/ecofinds/ecofinds-backend/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogReader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// SubmitInput is the one-shot submission payload.
type SubmitInput struct {
	ShippingInfo   ShippingInfo
	ShippingMethod enums.ShippingMethod
	PaymentMethod  enums.PaymentMethod
}

// Service sequences the checkout state machine. A session moves Editing to
// Submitting to Completed; any failure returns it to Editing with the cart
// untouched.
type Service interface {
	Submit(ctx context.Context, ownerID uuid.UUID, input SubmitInput) (*orders.OrderDTO, error)
	State(ownerID uuid.UUID) enums.CheckoutState
}

type service struct {
	tx             txRunner
	cartRepo       *cart.Repository
	ordersRepo     orders.Repository
	catalog        catalogReader
	gateway        PaymentGateway
	outbox         outboxPublisher
	paymentTimeout time.Duration

	mu       sync.Mutex
	sessions map[uuid.UUID]enums.CheckoutState
}

// NewService builds the checkout orchestrator.
func NewService(
	tx txRunner,
	cartRepo *cart.Repository,
	ordersRepo orders.Repository,
	catalog catalogReader,
	gateway PaymentGateway,
	publisher outboxPublisher,
	paymentTimeout time.Duration,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if paymentTimeout <= 0 {
		paymentTimeout = 15 * time.Second
	}
	return &service{
		tx:             tx,
		cartRepo:       cartRepo,
		ordersRepo:     ordersRepo,
		catalog:        catalog,
		gateway:        gateway,
		outbox:         publisher,
		paymentTimeout: paymentTimeout,
		sessions:       map[uuid.UUID]enums.CheckoutState{},
	}, nil
}

// State reports the owner's current checkout session state. Owners with no
// session are Editing.
func (s *service) State(ownerID uuid.UUID) enums.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[ownerID]; ok {
		return state
	}
	return enums.CheckoutStateEditing
}

// Submit freezes the cart into an immutable order. Validation failures and
// payment declines leave the cart as it was.
func (s *service) Submit(ctx context.Context, ownerID uuid.UUID, input SubmitInput) (*orders.OrderDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	if !input.ShippingMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid shipping method %q", input.ShippingMethod))
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", input.PaymentMethod))
	}
	if err := validateShippingInfo(input.ShippingInfo); err != nil {
		return nil, err
	}

	if err := s.beginSubmission(ownerID); err != nil {
		return nil, err
	}
	dto, err := s.submit(ctx, ownerID, input)
	s.endSubmission(ownerID, err)
	return dto, err
}

func (s *service) beginSubmission(ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions[ownerID] == enums.CheckoutStateSubmitting {
		return pkgerrors.New(pkgerrors.CodeConflict, "checkout submission already in progress")
	}
	s.sessions[ownerID] = enums.CheckoutStateSubmitting
	return nil
}

func (s *service) endSubmission(ownerID uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.sessions[ownerID] = enums.CheckoutStateEditing
		return
	}
	// Completed is terminal and State defaults absent owners to Editing,
	// so the entry can go rather than sit in the map forever.
	delete(s.sessions, ownerID)
}

func (s *service) submit(ctx context.Context, ownerID uuid.UUID, input SubmitInput) (*orders.OrderDTO, error) {
	record, err := s.cartRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}
	if len(record.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
	}

	productIDs := make([]uuid.UUID, 0, len(record.Lines))
	for _, line := range record.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	catalog, err := s.catalog.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve cart products")
	}

	var unavailable []uuid.UUID
	pricingLines := make([]pricing.Line, 0, len(record.Lines))
	lineItems := make([]models.OrderLineItem, 0, len(record.Lines))
	for _, line := range record.Lines {
		productRow, ok := catalog[line.ProductID]
		if !ok || !productRow.IsActive {
			unavailable = append(unavailable, line.ProductID)
			continue
		}
		pricingLines = append(pricingLines, pricing.Line{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: productRow.PriceCents,
		})
		lineItems = append(lineItems, models.OrderLineItem{
			ID:             uuid.New(),
			ProductID:      line.ProductID,
			Title:          productRow.Title,
			Quantity:       line.Quantity,
			UnitPriceCents: productRow.PriceCents,
		})
	}
	if len(unavailable) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart contains unavailable listings").
			WithDetails(map[string][]uuid.UUID{"product_ids": unavailable})
	}

	now := time.Now().UTC()
	totals := pricing.Calculate(pricingLines, input.ShippingMethod)
	number := orders.NewOrderNumber(now)

	// The charge blocks on the external processor; no transaction is open
	// while it runs, so a decline or timeout leaves the cart intact.
	chargeCtx, cancel := context.WithTimeout(ctx, s.paymentTimeout)
	defer cancel()
	if _, err := s.gateway.Charge(chargeCtx, ChargeRequest{
		OwnerID:     ownerID,
		OrderNumber: number,
		AmountCents: totals.TotalCents,
		Method:      input.PaymentMethod,
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePayment, err, "payment failed")
	}

	country := input.ShippingInfo.Country
	if country == "" {
		country = defaultShipCountry
	}
	order := &models.Order{
		ID:              uuid.New(),
		Number:          number,
		OwnerID:         ownerID,
		SubtotalCents:   totals.SubtotalCents,
		ShippingCents:   totals.ShippingCents,
		TaxCents:        totals.TaxCents,
		TotalCents:      totals.TotalCents,
		EcoSavingsCents: totals.EcoSavingsCents,
		ShippingMethod:  input.ShippingMethod,
		PaymentMethod:   input.PaymentMethod,
		ShipFullName:    input.ShippingInfo.FullName,
		ShipEmail:       input.ShippingInfo.Email,
		ShipPhone:       input.ShippingInfo.Phone,
		ShipAddress:     input.ShippingInfo.Address,
		ShipCity:        input.ShippingInfo.City,
		ShipZip:         input.ShippingInfo.Zip,
		ShipCountry:     country,
		LineItems:       lineItems,
		CreatedAt:       now,
	}

	var created *models.Order
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txOrders := s.ordersRepo.WithTx(tx)
		txCart := s.cartRepo.WithTx(tx)

		// The charge ran against the pre-payment snapshot. Re-acquire the
		// cart under its row lock and make sure nothing moved while the
		// gateway call was in flight; a mutation in that window means the
		// charged amount no longer matches the cart.
		current, err := txCart.FindActiveByOwnerForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeConflict, "cart changed during payment")
			}
			return err
		}
		if current.ID != record.ID || !sameLineSet(record.Lines, current.Lines) {
			return pkgerrors.New(pkgerrors.CodeConflict, "cart changed during payment")
		}

		created, err = txOrders.Create(ctx, order)
		if err != nil {
			return err
		}
		for _, line := range record.Lines {
			if err := txCart.DeleteLine(ctx, record.ID, line.ProductID); err != nil {
				return err
			}
		}
		if err := txCart.UpdateStatus(ctx, record.ID, enums.CartStatusConverted); err != nil {
			return err
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			Actor:         &outbox.ActorRef{UserID: ownerID},
			Version:       1,
			OccurredAt:    now,
			Data: payloads.OrderCreatedEvent{
				OrderID:         created.ID,
				Number:          created.Number,
				OwnerID:         ownerID,
				SubtotalCents:   created.SubtotalCents,
				TotalCents:      created.TotalCents,
				EcoSavingsCents: created.EcoSavingsCents,
				LineCount:       len(created.LineItems),
				CreatedAt:       created.CreatedAt,
			},
		})
	}); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: persist order")
	}

	return orders.NewOrderDTO(created), nil
}

func sameLineSet(snapshot, current []models.CartLine) bool {
	if len(snapshot) != len(current) {
		return false
	}
	quantities := make(map[uuid.UUID]int, len(snapshot))
	for _, line := range snapshot {
		quantities[line.ProductID] = line.Quantity
	}
	for _, line := range current {
		if qty, ok := quantities[line.ProductID]; !ok || qty != line.Quantity {
			return false
		}
	}
	return true
}
