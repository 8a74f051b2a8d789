package orders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/ecofinds/ecofinds-backend/pkg/errors"
	"github.com/ecofinds/ecofinds-backend/pkg/pagination"
)

func TestNewOrderNumber(t *testing.T) {
	at := time.UnixMilli(1700000000000).UTC()
	assert.Equal(t, "ECO1700000000000", NewOrderNumber(at))
	assert.True(t, strings.HasPrefix(NewOrderNumber(time.Now()), "ECO"))
}

func TestServiceGetOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	ownerID := uuid.New()
	created, err := repo.Create(ctx, buildOrder(ownerID, time.Now().UTC()))
	require.NoError(t, err)

	dto, err := svc.GetOrder(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Number, dto.Number)
	assert.Equal(t, "standard", dto.ShippingMethod)
	assert.Equal(t, "card", dto.PaymentMethod)
	assert.Equal(t, "Riley Carson", dto.ShippingInfo.FullName)
	require.Len(t, dto.LineItems, 2)
}

func TestServiceGetOrderWrongOwner(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := repo.Create(ctx, buildOrder(uuid.New(), time.Now().UTC()))
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, uuid.New(), created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceListOrdersEmpty(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	result, err := svc.ListOrders(context.Background(), uuid.New(), pagination.Params{})
	require.NoError(t, err)
	assert.Empty(t, result.Orders)
	assert.Empty(t, result.NextCursor)
}

func TestServiceListOrdersInvalidCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.ListOrders(context.Background(), uuid.New(), pagination.Params{Cursor: "???"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
