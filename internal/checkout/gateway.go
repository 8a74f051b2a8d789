package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/ecofinds/ecofinds-backend/pkg/config"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
)

// ChargeRequest is the payment instruction sent to the gateway.
type ChargeRequest struct {
	OwnerID     uuid.UUID
	OrderNumber string
	AmountCents int
	Method      enums.PaymentMethod
}

// ChargeResult acknowledges a settled charge.
type ChargeResult struct {
	TransactionID string
}

// PaymentGateway settles the order total with an external processor. The
// call blocks and runs outside any database transaction; a decline comes
// back as a CodePayment error.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

type simulatedGateway struct {
	declineCode string
}

// NewSimulatedGateway returns the stub processor used outside production.
// It approves everything unless the config forces a decline code.
func NewSimulatedGateway(cfg config.CheckoutConfig) PaymentGateway {
	return &simulatedGateway{declineCode: cfg.SimulatedDeclineCode}
}

func (g *simulatedGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePayment, err, "payment canceled")
	}
	if req.AmountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodePayment, "charge amount must be positive")
	}
	if g.declineCode != "" {
		return nil, pkgerrors.New(pkgerrors.CodePayment, "payment declined").
			WithDetails(map[string]string{"decline_code": g.declineCode})
	}
	return &ChargeResult{TransactionID: uuid.NewString()}, nil
}
