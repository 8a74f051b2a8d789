package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
	"github.com/ecofinds/ecofinds-backend/pkg/enums"
	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type stubCatalog struct {
	products map[uuid.UUID]models.Product
}

func (s *stubCatalog) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	row, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (s *stubCatalog) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error) {
	out := make(map[uuid.UUID]models.Product, len(ids))
	for _, id := range ids {
		if row, ok := s.products[id]; ok {
			out[id] = row
		}
	}
	return out, nil
}

func (s *stubCatalog) add(priceCents int, active bool) uuid.UUID {
	id := uuid.New()
	s.products[id] = models.Product{
		ID:         id,
		SellerID:   uuid.New(),
		Title:      "Listing",
		Category:   enums.CategoryHome,
		Condition:  enums.ConditionGood,
		PriceCents: priceCents,
		IsActive:   active,
	}
	return id
}

func newCartTestService(t *testing.T) (Service, *Repository, *stubCatalog) {
	t.Helper()

	db := setupCartTestDB(t)
	repo := NewRepository(db)
	catalog := &stubCatalog{products: map[uuid.UUID]models.Product{}}

	svc, err := NewService(repo, testTxRunner{db: db}, catalog)
	require.NoError(t, err)
	return svc, repo, catalog
}

func TestAddItemCreatesCartLazily(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	productID := catalog.add(4500, true)

	require.NoError(t, svc.AddItem(ctx, ownerID, productID, 2))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, record.Lines, 1)
	assert.Equal(t, 2, record.Lines[0].Quantity)
}

func TestAddItemMergesBySumming(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	productID := catalog.add(4500, true)

	require.NoError(t, svc.AddItem(ctx, ownerID, productID, 2))
	require.NoError(t, svc.AddItem(ctx, ownerID, productID, 3))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, record.Lines, 1)
	assert.Equal(t, 5, record.Lines[0].Quantity)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, catalog := newCartTestService(t)
	productID := catalog.add(4500, true)

	for _, qty := range []int{0, -1} {
		err := svc.AddItem(context.Background(), uuid.New(), productID, qty)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed, "qty %d", qty)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc, _, _ := newCartTestService(t)

	err := svc.AddItem(context.Background(), uuid.New(), uuid.New(), 1)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestAddItemInactiveProduct(t *testing.T) {
	svc, _, catalog := newCartTestService(t)
	productID := catalog.add(4500, false)

	err := svc.AddItem(context.Background(), uuid.New(), productID, 1)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestSetQuantityOverwrites(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	productID := catalog.add(4500, true)

	require.NoError(t, svc.AddItem(ctx, ownerID, productID, 2))
	require.NoError(t, svc.SetQuantity(ctx, ownerID, productID, 7))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, record.Lines, 1)
	assert.Equal(t, 7, record.Lines[0].Quantity)
}

func TestSetQuantityCreatesMissingLine(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	productID := catalog.add(4500, true)

	require.NoError(t, svc.SetQuantity(ctx, ownerID, productID, 3))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, record.Lines, 1)
	assert.Equal(t, 3, record.Lines[0].Quantity)
}

func TestSetQuantityZeroBehavesAsRemove(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	productID := catalog.add(4500, true)

	require.NoError(t, svc.AddItem(ctx, ownerID, productID, 2))
	require.NoError(t, svc.SetQuantity(ctx, ownerID, productID, 0))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, record.Lines)
}

func TestRemoveItemIdempotent(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	productID := catalog.add(4500, true)

	// no cart at all
	require.NoError(t, svc.RemoveItem(ctx, ownerID, productID))

	require.NoError(t, svc.AddItem(ctx, ownerID, productID, 2))
	require.NoError(t, svc.RemoveItem(ctx, ownerID, productID))
	require.NoError(t, svc.RemoveItem(ctx, ownerID, productID))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, record.Lines)
}

func TestSnapshotEmptyForOwnerWithoutCart(t *testing.T) {
	svc, _, _ := newCartTestService(t)

	ownerID := uuid.New()
	snapshot, err := svc.Snapshot(context.Background(), ownerID, enums.ShippingMethodStandard)
	require.NoError(t, err)
	assert.Equal(t, ownerID, snapshot.OwnerID)
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, 0, snapshot.Totals.TotalCents)
}

func TestSnapshotTotals(t *testing.T) {
	svc, _, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	cheap := catalog.add(2500, true)
	mid := catalog.add(3200, true)

	require.NoError(t, svc.AddItem(ctx, ownerID, cheap, 2))
	require.NoError(t, svc.AddItem(ctx, ownerID, mid, 1))

	snapshot, err := svc.Snapshot(ctx, ownerID, enums.ShippingMethodStandard)
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 2)
	assert.Equal(t, 8200, snapshot.Totals.SubtotalCents)
	assert.Equal(t, 800, snapshot.Totals.ShippingCents)
	assert.Equal(t, 656, snapshot.Totals.TaxCents)
	assert.Equal(t, 9656, snapshot.Totals.TotalCents)
}

func TestSnapshotWarnsStaleLinesAndExcludesFromTotals(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	good := catalog.add(4500, true)
	require.NoError(t, svc.AddItem(ctx, ownerID, good, 1))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)

	// one line whose product vanished, one whose product got delisted
	missingID := uuid.New()
	require.NoError(t, repo.CreateLine(ctx, &models.CartLine{ID: uuid.New(), CartID: record.ID, ProductID: missingID, Quantity: 1}))
	delisted := catalog.add(9900, false)
	require.NoError(t, repo.CreateLine(ctx, &models.CartLine{ID: uuid.New(), CartID: record.ID, ProductID: delisted, Quantity: 2}))

	snapshot, err := svc.Snapshot(ctx, ownerID, enums.ShippingMethodPickup)
	require.NoError(t, err)
	require.Len(t, snapshot.Lines, 3)

	warnings := map[uuid.UUID]string{}
	for _, line := range snapshot.Lines {
		warnings[line.ProductID] = line.Warning
	}
	assert.Empty(t, warnings[good])
	assert.Equal(t, enums.WarningProductMissing.String(), warnings[missingID])
	assert.Equal(t, enums.WarningProductInactive.String(), warnings[delisted])

	assert.Equal(t, 4500, snapshot.Totals.SubtotalCents)
}

func TestSnapshotRejectsUnknownShippingMethod(t *testing.T) {
	svc, _, _ := newCartTestService(t)

	_, err := svc.Snapshot(context.Background(), uuid.New(), enums.ShippingMethod("drone"))
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestClearEmptiesCart(t *testing.T) {
	svc, repo, catalog := newCartTestService(t)
	ctx := context.Background()

	ownerID := uuid.New()
	first := catalog.add(4500, true)
	second := catalog.add(1200, true)

	require.NoError(t, svc.AddItem(ctx, ownerID, first, 1))
	require.NoError(t, svc.AddItem(ctx, ownerID, second, 4))
	require.NoError(t, svc.Clear(ctx, ownerID))

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, record.Lines)

	// clearing again is a no-op success
	require.NoError(t, svc.Clear(ctx, ownerID))
}

func TestCartCreateCollisionLocksWinner(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewRepository(db)
	catalog := &stubCatalog{products: map[uuid.UUID]models.Product{}}
	svcIface, err := NewService(repo, testTxRunner{db: db}, catalog)
	require.NoError(t, err)
	svc := svcIface.(*service)
	ctx := context.Background()

	ownerID := uuid.New()
	winner := &models.Cart{ID: uuid.New(), OwnerID: ownerID, Status: enums.CartStatusActive}
	require.NoError(t, db.Create(winner).Error)

	// the insert collides with the winner's row; the loser must come back
	// holding the winner's cart, not an error
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		got, err := svc.createActiveCart(ctx, repo.WithTx(tx), ownerID)
		require.NoError(t, err)
		assert.Equal(t, winner.ID, got.ID)
		return nil
	}))

	var count int64
	require.NoError(t, db.Model(&models.Cart{}).Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentFirstAddsShareOneCart(t *testing.T) {
	db := setupCartTestDB(t)
	// sqlite cannot interleave two write transactions; one connection
	// serializes them the way the postgres row lock does
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo := NewRepository(db)
	catalog := &stubCatalog{products: map[uuid.UUID]models.Product{}}
	svc, err := NewService(repo, testTxRunner{db: db}, catalog)
	require.NoError(t, err)
	ctx := context.Background()

	ownerID := uuid.New()
	first := catalog.add(4500, true)
	second := catalog.add(900, true)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, productID := range []uuid.UUID{first, second} {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			errs <- svc.AddItem(ctx, ownerID, id, 1)
		}(productID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	record, err := repo.FindActiveByOwner(ctx, ownerID)
	require.NoError(t, err)
	assert.Len(t, record.Lines, 2)

	var cartCount int64
	require.NoError(t, db.Model(&models.Cart{}).Where("owner_id = ?", ownerID).Count(&cartCount).Error)
	assert.Equal(t, int64(1), cartCount)
}
