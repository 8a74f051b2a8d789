package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/assistant"
	"github.com/ecofinds/ecofinds-backend/internal/auth"
	cartsvc "github.com/ecofinds/ecofinds-backend/internal/cart"
	checkoutsvc "github.com/ecofinds/ecofinds-backend/internal/checkout"
	ordersvc "github.com/ecofinds/ecofinds-backend/internal/orders"
	productsvc "github.com/ecofinds/ecofinds-backend/internal/products"
	pkgAuth "github.com/ecofinds/ecofinds-backend/pkg/auth"
	"github.com/ecofinds/ecofinds-backend/pkg/config"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	"github.com/ecofinds/ecofinds-backend/pkg/logger"
	"github.com/ecofinds/ecofinds-backend/pkg/pagination"
	"github.com/ecofinds/ecofinds-backend/internal/pricing"
	"github.com/google/uuid"
)

var routerJWTConfig = config.JWTConfig{
	Secret:            "router-secret",
	Issuer:            "ecofinds",
	ExpirationMinutes: 30,
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{JWT: routerJWTConfig}
	logg := logger.New(logger.Options{ServiceName: "router-test"})
	return NewRouter(cfg, logg, stubPinger{}, nil, stubSessionManager{}, Services{
		Auth:      stubAuthService{},
		Products:  stubProductService{},
		Cart:      stubCartService{},
		Checkout:  stubCheckoutService{},
		Orders:    stubOrdersService{},
		Assistant: assistant.NewService(nil),
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRouterPublicProducts(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Ceramic Planter") {
		t.Fatalf("expected product payload, got %s", rec.Body.String())
	}
}

func TestRouterAssistantIsPublic(t *testing.T) {
	router := newTestRouter(t)

	body := strings.NewReader(`{"message":"Show me electronics"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/messages", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"intent":"electronics"`) {
		t.Fatalf("expected electronics intent, got %s", rec.Body.String())
	}
}

func TestRouterCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouterCartWithToken(t *testing.T) {
	router := newTestRouter(t)

	token, err := pkgAuth.MintAccessToken(routerJWTConfig, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"shipping_method":"standard"`) {
		t.Fatalf("expected snapshot payload, got %s", rec.Body.String())
	}
}

func TestRouterLoginBadBody(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return uuid.NewString(), "rotated-refresh", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

type stubProductService struct{}

func (stubProductService) CreateProduct(ctx context.Context, sellerID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: uuid.New(), SellerID: sellerID, Title: input.Title}, nil
}

func (stubProductService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID, SellerID: sellerID}, nil
}

func (stubProductService) DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	return nil
}

func (stubProductService) GetProduct(ctx context.Context, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID, Title: "Ceramic Planter"}, nil
}

func (stubProductService) ListProducts(ctx context.Context, input productsvc.ListProductsInput) (*productsvc.ProductListResult, error) {
	return &productsvc.ProductListResult{
		Products: []productsvc.ProductDTO{{ID: uuid.New(), Title: "Ceramic Planter"}},
	}, nil
}

func (stubProductService) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]productsvc.ProductDTO, error) {
	return nil, nil
}

type stubCartService struct{}

func (stubCartService) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error {
	return nil
}

func (stubCartService) SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error {
	return nil
}

func (stubCartService) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) error {
	return nil
}

func (stubCartService) Snapshot(ctx context.Context, ownerID uuid.UUID, method enums.ShippingMethod) (*cartsvc.SnapshotDTO, error) {
	return &cartsvc.SnapshotDTO{
		OwnerID:        ownerID,
		ShippingMethod: method.String(),
		Totals:         pricing.OrderTotals{},
	}, nil
}

func (stubCartService) Clear(ctx context.Context, ownerID uuid.UUID) error { return nil }

type stubCheckoutService struct{}

func (stubCheckoutService) Submit(ctx context.Context, ownerID uuid.UUID, input checkoutsvc.SubmitInput) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: uuid.New(), Number: "ECO1700000000000"}, nil
}

func (stubCheckoutService) State(ownerID uuid.UUID) enums.CheckoutState {
	return enums.CheckoutStateEditing
}

type stubOrdersService struct{}

func (stubOrdersService) GetOrder(ctx context.Context, ownerID, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: orderID}, nil
}

func (stubOrdersService) ListOrders(ctx context.Context, ownerID uuid.UUID, params pagination.Params) (*ordersvc.OrderListResult, error) {
	return &ordersvc.OrderListResult{}, nil
}
