package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := errors.New(`ERROR: duplicate key value violates unique constraint "ux_carts_owner_active" (SQLSTATE 23505)`)
	sqliteErr := errors.New("UNIQUE constraint failed: carts.owner_id")

	assert.True(t, IsUniqueViolation(pgErr, "ux_carts_owner_active"))
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(sqliteErr, ""))
	assert.False(t, IsUniqueViolation(pgErr, "ux_other"))
	assert.False(t, IsUniqueViolation(errors.New("connection reset"), ""))
	assert.False(t, IsUniqueViolation(nil, "ux_carts_owner_active"))
}
