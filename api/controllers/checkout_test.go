package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	checkoutsvc "github.com/ecofinds/ecofinds-backend/internal/checkout"
	ordersvc "github.com/ecofinds/ecofinds-backend/internal/orders"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
)

type stubCheckoutService struct {
	input *checkoutsvc.SubmitInput
}

func (s *stubCheckoutService) Submit(ctx context.Context, ownerID uuid.UUID, input checkoutsvc.SubmitInput) (*ordersvc.OrderDTO, error) {
	s.input = &input
	return &ordersvc.OrderDTO{ID: uuid.New(), Number: "ECO1700000000000"}, nil
}

func (s *stubCheckoutService) State(ownerID uuid.UUID) enums.CheckoutState {
	return enums.CheckoutStateEditing
}

const validCheckoutBody = `{
	"shipping_info": {
		"full_name": "Riley Carson",
		"email": "riley@example.com",
		"address": "12 Fern Way",
		"city": "Portland",
		"zip": "97201"
	},
	"shipping_method": "standard",
	"payment": "card"
}`

func TestCheckoutSubmit(t *testing.T) {
	stub := &stubCheckoutService{}
	rec := httptest.NewRecorder()
	Checkout(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(validCheckoutBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.input == nil {
		t.Fatal("expected submit input recorded")
	}
	if stub.input.ShippingMethod != enums.ShippingMethodStandard {
		t.Fatalf("unexpected shipping method %s", stub.input.ShippingMethod)
	}
	if stub.input.ShippingInfo.FullName != "Riley Carson" {
		t.Fatalf("unexpected shipping info %+v", stub.input.ShippingInfo)
	}
	if !strings.Contains(rec.Body.String(), "ECO1700000000000") {
		t.Fatalf("expected order number in response, got %s", rec.Body.String())
	}
}

func TestCheckoutRejectsUnknownShippingMethod(t *testing.T) {
	body := strings.Replace(validCheckoutBody, `"standard"`, `"teleport"`, 1)
	rec := httptest.NewRecorder()
	Checkout(&stubCheckoutService{}, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCheckoutRequiresUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(validCheckoutBody))
	rec := httptest.NewRecorder()
	Checkout(&stubCheckoutService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
