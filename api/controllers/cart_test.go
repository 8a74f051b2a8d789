package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ecofinds/ecofinds-backend/api/middleware"
	cartsvc "github.com/ecofinds/ecofinds-backend/internal/cart"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	"github.com/ecofinds/ecofinds-backend/internal/pricing"
)

type stubCartService struct {
	added    []uuid.UUID
	quantity int
	cleared  bool
	method   enums.ShippingMethod
}

func (s *stubCartService) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error {
	s.added = append(s.added, productID)
	s.quantity = quantity
	return nil
}

func (s *stubCartService) SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error {
	s.quantity = quantity
	return nil
}

func (s *stubCartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) error {
	return nil
}

func (s *stubCartService) Snapshot(ctx context.Context, ownerID uuid.UUID, method enums.ShippingMethod) (*cartsvc.SnapshotDTO, error) {
	s.method = method
	return &cartsvc.SnapshotDTO{OwnerID: ownerID, ShippingMethod: method.String(), Totals: pricing.OrderTotals{}}, nil
}

func (s *stubCartService) Clear(ctx context.Context, ownerID uuid.UUID) error {
	s.cleared = true
	return nil
}

func authedRequest(method, target string, body *strings.Reader) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
	}
	return req.WithContext(middleware.WithUserID(req.Context(), uuid.NewString()))
}

func TestCartFetchDefaultsToStandardShipping(t *testing.T) {
	stub := &stubCartService{}
	rec := httptest.NewRecorder()
	CartFetch(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.method != enums.ShippingMethodStandard {
		t.Fatalf("expected standard shipping, got %s", stub.method)
	}
}

func TestCartFetchRejectsUnknownShipping(t *testing.T) {
	rec := httptest.NewRecorder()
	CartFetch(&stubCartService{}, testLogger()).ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/cart?shipping=drone", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartAddItem(t *testing.T) {
	productID := uuid.New()
	stub := &stubCartService{}
	body := strings.NewReader(`{"product_id":"` + productID.String() + `","quantity":2}`)
	rec := httptest.NewRecorder()
	CartAddItem(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.added) != 1 || stub.added[0] != productID || stub.quantity != 2 {
		t.Fatalf("unexpected add: %v qty %d", stub.added, stub.quantity)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	body := strings.NewReader(`{"product_id":"` + uuid.NewString() + `","quantity":0}`)
	rec := httptest.NewRecorder()
	CartAddItem(&stubCartService{}, testLogger()).ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/cart/items", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCartSetItemZeroQuantityAllowed(t *testing.T) {
	productID := uuid.New()
	stub := &stubCartService{quantity: -1}
	body := strings.NewReader(`{"quantity":0}`)
	req := authedRequest(http.MethodPut, "/api/v1/cart/items/"+productID.String(), body)
	req = withRouteParam(req, "productId", productID.String())

	rec := httptest.NewRecorder()
	CartSetItem(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.quantity != 0 {
		t.Fatalf("expected quantity 0 passed through, got %d", stub.quantity)
	}
}

func TestCartClear(t *testing.T) {
	stub := &stubCartService{}
	rec := httptest.NewRecorder()
	CartClear(stub, testLogger()).ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !stub.cleared {
		t.Fatal("expected clear to be called")
	}
}
