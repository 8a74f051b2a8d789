package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ecofinds/ecofinds-backend/internal/pricing"
	"github.com/ecofinds/ecofinds-backend/pkg/db"
	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/visibility"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type catalogReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// Service is the single source of truth for a shopper's pending selections.
type Service interface {
	AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error
	RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) error
	Snapshot(ctx context.Context, ownerID uuid.UUID, method enums.ShippingMethod) (*SnapshotDTO, error)
	Clear(ctx context.Context, ownerID uuid.UUID) error
}

type service struct {
	repo    *Repository
	tx      txRunner
	catalog catalogReader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, catalog catalogReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &service{repo: repo, tx: tx, catalog: catalog}, nil
}

// AddItem merges the quantity onto an existing line by summing, creating
// the cart and the line as needed. The row lock on the cart record makes
// concurrent adds for the same product serialize instead of overwriting.
func (s *service) AddItem(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error {
	if err := validateMutation(ownerID, productID); err != nil {
		return err
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if err := s.ensurePurchasable(ctx, productID); err != nil {
		return err
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := s.lockOrCreateCart(ctx, txRepo, ownerID)
		if err != nil {
			return err
		}

		line, err := txRepo.FindLine(ctx, record.ID, productID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if line != nil {
			if err := txRepo.UpdateLineQuantity(ctx, line.ID, line.Quantity+quantity); err != nil {
				return err
			}
		} else {
			newLine := &models.CartLine{ID: uuid.New(), CartID: record.ID, ProductID: productID, Quantity: quantity}
			if err := txRepo.CreateLine(ctx, newLine); err != nil {
				return err
			}
		}
		return txRepo.Touch(ctx, record.ID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: add cart line")
	}
	return nil
}

// SetQuantity overwrites the line's quantity, never sums. A quantity at or
// below zero behaves as RemoveItem.
func (s *service) SetQuantity(ctx context.Context, ownerID, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, ownerID, productID)
	}
	if err := validateMutation(ownerID, productID); err != nil {
		return err
	}
	if err := s.ensurePurchasable(ctx, productID); err != nil {
		return err
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := s.lockOrCreateCart(ctx, txRepo, ownerID)
		if err != nil {
			return err
		}

		line, err := txRepo.FindLine(ctx, record.ID, productID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if line != nil {
			if err := txRepo.UpdateLineQuantity(ctx, line.ID, quantity); err != nil {
				return err
			}
		} else {
			newLine := &models.CartLine{ID: uuid.New(), CartID: record.ID, ProductID: productID, Quantity: quantity}
			if err := txRepo.CreateLine(ctx, newLine); err != nil {
				return err
			}
		}
		return txRepo.Touch(ctx, record.ID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set cart line quantity")
	}
	return nil
}

// RemoveItem deletes the product's line. Removing an absent line, or
// removing from an owner with no cart, succeeds without effect.
func (s *service) RemoveItem(ctx context.Context, ownerID, productID uuid.UUID) error {
	if err := validateMutation(ownerID, productID); err != nil {
		return err
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := txRepo.FindActiveByOwnerForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := txRepo.DeleteLine(ctx, record.ID, productID); err != nil {
			return err
		}
		return txRepo.Touch(ctx, record.ID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: remove cart line")
	}
	return nil
}

// Snapshot joins the cart with live catalog data and prices it under the
// selected shipping method. Lines whose product is gone or delisted carry
// a warning and are excluded from the totals.
func (s *service) Snapshot(ctx context.Context, ownerID uuid.UUID, method enums.ShippingMethod) (*SnapshotDTO, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	if !method.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid shipping method %q", method))
	}

	record, err := s.repo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SnapshotDTO{
				OwnerID:        ownerID,
				Lines:          []SnapshotLineDTO{},
				ShippingMethod: method.String(),
			}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart")
	}

	productIDs := make([]uuid.UUID, 0, len(record.Lines))
	for _, line := range record.Lines {
		productIDs = append(productIDs, line.ProductID)
	}
	catalog, err := s.catalog.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve cart products")
	}

	lines := make([]SnapshotLineDTO, 0, len(record.Lines))
	priced := make([]pricing.Line, 0, len(record.Lines))
	for _, line := range record.Lines {
		entry := SnapshotLineDTO{ProductID: line.ProductID, Quantity: line.Quantity}

		productRow, ok := catalog[line.ProductID]
		switch {
		case !ok:
			entry.Warning = enums.WarningProductMissing.String()
		case !productRow.IsActive:
			entry.Title = productRow.Title
			entry.Warning = enums.WarningProductInactive.String()
		default:
			entry.Title = productRow.Title
			entry.UnitPriceCents = productRow.PriceCents
			entry.LineTotalCents = productRow.PriceCents * line.Quantity
			priced = append(priced, pricing.Line{
				ProductID:      line.ProductID,
				Quantity:       line.Quantity,
				UnitPriceCents: productRow.PriceCents,
			})
		}
		lines = append(lines, entry)
	}

	updatedAt := record.UpdatedAt
	return &SnapshotDTO{
		CartID:         record.ID,
		OwnerID:        ownerID,
		Lines:          lines,
		ShippingMethod: method.String(),
		Totals:         pricing.Calculate(priced, method),
		UpdatedAt:      &updatedAt,
	}, nil
}

// Clear empties all lines from the owner's cart. An owner with no cart is
// a no-op success.
func (s *service) Clear(ctx context.Context, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		record, err := txRepo.FindActiveByOwnerForUpdate(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := txRepo.DeleteLines(ctx, record.ID); err != nil {
			return err
		}
		return txRepo.Touch(ctx, record.ID)
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
	}
	return nil
}

func (s *service) lockOrCreateCart(ctx context.Context, txRepo *Repository, ownerID uuid.UUID) (*models.Cart, error) {
	record, err := txRepo.FindActiveByOwnerForUpdate(ctx, ownerID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.createActiveCart(ctx, txRepo, ownerID)
}

// createActiveCart inserts the owner's active cart. Two first adds can race
// past the lookup; ux_carts_owner_active rejects the loser, which then locks
// the winner's cart instead of failing. The insert runs in a savepoint so
// the rejection doesn't poison the enclosing transaction on postgres.
func (s *service) createActiveCart(ctx context.Context, txRepo *Repository, ownerID uuid.UUID) (*models.Cart, error) {
	record := &models.Cart{ID: uuid.New(), OwnerID: ownerID, Status: enums.CartStatusActive}
	err := txRepo.db.Transaction(func(nested *gorm.DB) error {
		_, createErr := txRepo.WithTx(nested).Create(ctx, record)
		return createErr
	})
	if err == nil {
		return record, nil
	}
	if !db.IsUniqueViolation(err, "ux_carts_owner_active") && !db.IsUniqueViolation(err, "") {
		return nil, err
	}
	return txRepo.FindActiveByOwnerForUpdate(ctx, ownerID)
}

func (s *service) ensurePurchasable(ctx context.Context, productID uuid.UUID) error {
	productRow, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return visibility.EnsurePurchasable(productRow)
}

func validateMutation(ownerID, productID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "owner id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return nil
}
