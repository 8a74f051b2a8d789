package product

import (
	"context"
	"testing"

	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()

	repo := NewRepository(setupProductsTestDB(t))
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("expected service to build, got %v", err)
	}
	return svc, repo
}

func TestValidateListing(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := validateListing("Bamboo Shelf", enums.CategoryFurniture, enums.ConditionGood, 2500)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("blankTitle", func(t *testing.T) {
		err := validateListing("   ", enums.CategoryFurniture, enums.ConditionGood, 2500)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknownCategory", func(t *testing.T) {
		err := validateListing("Bamboo Shelf", enums.ProductCategory("vehicles"), enums.ConditionGood, 2500)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknownCondition", func(t *testing.T) {
		err := validateListing("Bamboo Shelf", enums.CategoryFurniture, enums.ProductCondition("mint"), 2500)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("negativePrice", func(t *testing.T) {
		err := validateListing("Bamboo Shelf", enums.CategoryFurniture, enums.ConditionGood, -1)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestServiceCreateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	dto, err := svc.CreateProduct(ctx, uuid.New(), CreateProductInput{
		Title:      "  Ceramic Planter  ",
		Category:   enums.CategoryHome,
		Condition:  enums.ConditionExcellent,
		PriceCents: 1800,
		Images:     []string{"https://cdn.ecofinds.app/p/planter.jpg"},
	})
	if err != nil {
		t.Fatalf("expected create to succeed, got %v", err)
	}
	if dto.Title != "Ceramic Planter" {
		t.Fatalf("expected trimmed title, got %q", dto.Title)
	}
	if !dto.IsActive {
		t.Fatal("expected new listings to be active")
	}
	if len(dto.Images) != 1 {
		t.Fatalf("expected one image, got %d", len(dto.Images))
	}
}

func TestServiceCreateProductMissingSeller(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), uuid.Nil, CreateProductInput{
		Title:      "Ceramic Planter",
		Category:   enums.CategoryHome,
		Condition:  enums.ConditionGood,
		PriceCents: 1800,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateProductOwnership(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	created, err := repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		SellerID:   sellerID,
		Title:      "Road Bike",
		Category:   enums.CategorySports,
		Condition:  enums.ConditionFair,
		PriceCents: 30000,
		Images:     pq.StringArray{},
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	newPrice := 28000
	dto, err := svc.UpdateProduct(ctx, sellerID, created.ID, UpdateProductInput{PriceCents: &newPrice})
	if err != nil {
		t.Fatalf("expected owner update to succeed, got %v", err)
	}
	if dto.PriceCents != 28000 {
		t.Fatalf("expected updated price, got %d", dto.PriceCents)
	}

	_, err = svc.UpdateProduct(ctx, uuid.New(), created.ID, UpdateProductInput{PriceCents: &newPrice})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for other seller, got %v", err)
	}

	_, err = svc.UpdateProduct(ctx, sellerID, uuid.New(), UpdateProductInput{PriceCents: &newPrice})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown listing, got %v", err)
	}
}

func TestServiceDeleteProduct(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	sellerID := uuid.New()
	created, err := repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		SellerID:   sellerID,
		Title:      "Paperbacks Bundle",
		Category:   enums.CategoryBooks,
		Condition:  enums.ConditionGood,
		PriceCents: 900,
		Images:     pq.StringArray{},
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	if err := svc.DeleteProduct(ctx, uuid.New(), created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for other seller, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, sellerID, created.ID); err != nil {
		t.Fatalf("expected delete to succeed, got %v", err)
	}

	_, err = svc.GetProduct(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestServiceGetProductHidesInactive(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Product{
		ID:         uuid.New(),
		SellerID:   uuid.New(),
		Title:      "Delisted Monitor",
		Category:   enums.CategoryElectronics,
		Condition:  enums.ConditionGood,
		PriceCents: 8000,
		Images:     pq.StringArray{},
		IsActive:   false,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}

	_, err = svc.GetProduct(ctx, created.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for inactive listing, got %v", err)
	}
}

func TestServiceListProductsInvalidCursor(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ListProducts(context.Background(), ListProductsInput{
		Pagination: pagination.Params{Cursor: "not-base64!"},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad cursor, got %v", err)
	}
}
