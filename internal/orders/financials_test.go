package orders

import (
	"testing"

	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinancialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		amount  string
		wantErr bool
	}{
		{"method with positive amount", "cash", "100", false},
		{"method with zero amount", "cash", "0", true},
		{"method with blank amount", "cash", "", true},
		{"method with negative amount", "cash", "-5", true},
		{"blank placeholder row", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFinancials()
			require.NoError(t, f.Set(0, PaymentMethod, tt.method))
			require.NoError(t, f.Set(0, PaymentAmount, tt.amount))
			err := f.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayment)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFinancialsCommittedSkipsPlaceholders(t *testing.T) {
	f := NewFinancials()
	require.NoError(t, f.Set(0, PaymentMethod, "cash"))
	require.NoError(t, f.Set(0, PaymentAmount, "100"))
	require.NoError(t, f.Set(0, PaymentComment, "first half"))
	f.Add()

	committed := f.Committed()
	require.Len(t, committed, 1)
	assert.Equal(t, "cash", committed[0].Method)
	assert.Equal(t, 100.0, committed[0].Amount)
	assert.Equal(t, "first half", committed[0].Comment)
}

func TestFinancialsRemoveKeepsLastRow(t *testing.T) {
	f := NewFinancials()
	require.NoError(t, f.Set(0, PaymentMethod, "cash"))

	// The last row never disappears; removing it is a quiet no-op.
	assert.NoError(t, f.Remove(0))
	rows := f.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "cash", rows[0].Method)

	assert.ErrorIs(t, f.Remove(5), ErrNoSuchPayment)

	f.Add()
	require.NoError(t, f.Remove(1))
	assert.Len(t, f.Rows(), 1)
}

func TestFinancialsFromOrder(t *testing.T) {
	o := warehouse.Order{Payments: []warehouse.Payment{{ID: 4, Method: "card", Amount: 250.5, Comment: "deposit"}}}
	f := FinancialsFromOrder(o)
	rows := f.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].ID)
	assert.Equal(t, "250.5", rows[0].Amount)

	// An order without payments still opens with one editable blank row.
	assert.Len(t, FinancialsFromOrder(warehouse.Order{}).Rows(), 1)
}

func TestPaymentState(t *testing.T) {
	none := warehouse.Order{Debt: 500}
	assert.Equal(t, PayNone, PaymentState(none))

	partial := warehouse.Order{
		Debt:     200,
		Payments: []warehouse.Payment{{Method: "cash", Amount: 300}},
	}
	assert.Equal(t, PayPartial, PaymentState(partial))

	paid := warehouse.Order{
		Debt:     0,
		Payments: []warehouse.Payment{{Method: "cash", Amount: 500}},
	}
	assert.Equal(t, PayPaid, PaymentState(paid))

	zeroOnly := warehouse.Order{Payments: []warehouse.Payment{{Method: "cash", Amount: 0}}}
	assert.Equal(t, PayNone, PaymentState(zeroOnly))
}
