package orders

import (
	"testing"

	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIndex() map[int]warehouse.Product {
	return map[int]warehouse.Product{
		1: {ID: 1, Name: "Lot A", Status: warehouse.ProductForSale, SummaRubSoSkidkoj: "1800.00", Weight: "2.00"},
		2: {ID: 2, Name: "Lot B", Status: warehouse.ProductForSale, SummaRubSoSkidkoj: "2500.00", Weight: "10.50"},
	}
}

func TestDraftValidate(t *testing.T) {
	d := NewDraft()
	assert.ErrorIs(t, d.Validate(productIndex()), ErrNameRequired)

	d.Name = "September batch"
	assert.ErrorIs(t, d.Validate(productIndex()), ErrNoComponents)

	d.Composition.Add(1)
	assert.NoError(t, d.Validate(productIndex()))

	require.NoError(t, d.Financials.Set(0, PaymentMethod, "cash"))
	assert.ErrorIs(t, d.Validate(productIndex()), ErrInvalidPayment)
	require.NoError(t, d.Financials.Set(0, PaymentAmount, "100"))
	assert.NoError(t, d.Validate(productIndex()))

	d.Composition.Add(99)
	assert.ErrorIs(t, d.Validate(productIndex()), ErrMissingGoods)
}

func TestDraftPayloadSnapshotsComponents(t *testing.T) {
	d := NewDraft()
	d.Name = "September batch"
	d.Debt = "300"
	d.Composition.Add(1)
	d.Composition.Add(2)
	require.NoError(t, d.Financials.Set(0, PaymentMethod, "cash"))
	require.NoError(t, d.Financials.Set(0, PaymentAmount, "4000"))

	payload, err := d.Payload(productIndex())
	require.NoError(t, err)

	assert.Equal(t, 2, payload.Quantity)
	require.Len(t, payload.Components, 2)
	assert.Equal(t, "Lot A", payload.Components[0].Name)
	assert.Equal(t, 300.0, payload.Debt)
	require.Len(t, payload.Payments, 1)
	assert.Equal(t, 4000.0, payload.Payments[0].Amount)
}

func TestDraftPayloadExcludesPending(t *testing.T) {
	original := warehouse.Order{
		ID:   10,
		Name: "October batch",
		Components: []warehouse.Product{
			{ID: 1, Name: "Lot A"},
			{ID: 2, Name: "Lot B"},
		},
	}
	d := DraftFromOrder(original)
	d.Composition.Remove(2)

	payload, err := d.Payload(productIndex())
	require.NoError(t, err)
	require.Len(t, payload.Components, 1)
	assert.Equal(t, 1, payload.Components[0].ID)
	assert.Equal(t, 1, payload.Quantity)
}

func TestDraftPayloadRejectsEmptyEffective(t *testing.T) {
	original := warehouse.Order{
		ID:         10,
		Name:       "October batch",
		Components: []warehouse.Product{{ID: 1, Name: "Lot A"}},
	}
	d := DraftFromOrder(original)
	d.Composition.Remove(1)

	_, err := d.Payload(productIndex())
	assert.ErrorIs(t, err, ErrNoComponents)
}

func TestMergeEcho(t *testing.T) {
	local := warehouse.Order{ID: 10, Name: "local", Debt: 50,
		Components: []warehouse.Product{{ID: 1}},
		Payments:   []warehouse.Payment{{Method: "cash", Amount: 10}},
	}

	assert.Equal(t, local, MergeEcho(local, nil), "no echo keeps the optimistic record")

	echo := warehouse.Order{ID: 10, Name: "authoritative", Debt: 0}
	merged := MergeEcho(local, &echo)
	assert.Equal(t, "authoritative", merged.Name)
	assert.Equal(t, 0.0, merged.Debt)
	assert.Equal(t, local.Components, merged.Components, "missing echo fields fall back to local")
	assert.Equal(t, local.Payments, merged.Payments)

	noID := warehouse.Order{Name: "authoritative"}
	assert.Equal(t, 10, MergeEcho(local, &noID).ID)
}
