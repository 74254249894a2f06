package cli

import (
	"errors"
	"testing"

	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "в продаже", productStatusLabel(warehouse.ProductForSale))
	assert.Equal(t, "в резерве", productStatusLabel(warehouse.ProductReserved))
	assert.Equal(t, "продан", productStatusLabel(warehouse.ProductSold))
	assert.Equal(t, "статус 9", productStatusLabel(9))

	assert.Equal(t, "новый", orderStatusLabel(warehouse.OrderNew))
	assert.Equal(t, "готов к отправке", orderStatusLabel(warehouse.OrderReadyToShip))
	assert.Equal(t, "отправлен", orderStatusLabel(warehouse.OrderShipped))
}

func TestDiscountLabel(t *testing.T) {
	assert.Equal(t, "без скидки", discountLabel(""))
	assert.Equal(t, "без скидки", discountLabel("0"))
	assert.Equal(t, "скидка 10%", discountLabel("10"))
	assert.Equal(t, "скидка 10%", discountLabel("10%"))
}

func TestFriendlyError(t *testing.T) {
	assert.Contains(t, friendlyError(warehouse.ErrMissingToken), "токен")
	assert.Contains(t, friendlyError(warehouse.ErrUnauthorized), "Нет доступа")
	assert.Equal(t, "boom", friendlyError(errors.New("boom")))
	assert.Equal(t, "", friendlyError(nil))
}
