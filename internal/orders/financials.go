package orders

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Talonmortem/SHM/internal/numeric"
	"github.com/Talonmortem/SHM/internal/warehouse"
)

var (
	ErrInvalidPayment = errors.New("all payments must have a valid method and positive amount")
	ErrNoSuchPayment  = errors.New("no such payment row")
)

// PaymentField names the editable inputs of a payment row.
type PaymentField string

const (
	PaymentMethod  PaymentField = "method"
	PaymentAmount  PaymentField = "amount"
	PaymentComment PaymentField = "comment"
)

// PayState classifies an order's payment situation for display.
type PayState string

const (
	PayNone    PayState = "none"
	PayPartial PayState = "partial"
	PayPaid    PayState = "paid"
)

// PaymentRow is one editable payment of a draft. Amount stays a raw string
// until commit; a row without a method is an inert placeholder.
type PaymentRow struct {
	ID      int
	Method  string
	Amount  string
	Comment string
}

// Financials manages the payment rows of one order draft.
type Financials struct {
	rows []PaymentRow
}

// NewFinancials starts with a single blank row, the way a fresh form opens.
func NewFinancials() *Financials {
	return &Financials{rows: []PaymentRow{{}}}
}

// FinancialsFromOrder loads the persisted payments of an order for editing.
func FinancialsFromOrder(o warehouse.Order) *Financials {
	if len(o.Payments) == 0 {
		return NewFinancials()
	}
	rows := make([]PaymentRow, 0, len(o.Payments))
	for _, p := range o.Payments {
		rows = append(rows, PaymentRow{
			ID:      p.ID,
			Method:  p.Method,
			Amount:  strconv.FormatFloat(p.Amount, 'f', -1, 64),
			Comment: p.Comment,
		})
	}
	return &Financials{rows: rows}
}

// Add appends a blank row.
func (f *Financials) Add() {
	f.rows = append(f.rows, PaymentRow{})
}

// Remove drops row i. Removing the last remaining row is a silent no-op, the
// way the form keeps one row on screen.
func (f *Financials) Remove(i int) error {
	if i < 0 || i >= len(f.rows) {
		return ErrNoSuchPayment
	}
	if len(f.rows) == 1 {
		return nil
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

// Set writes one field of row i.
func (f *Financials) Set(i int, field PaymentField, value string) error {
	if i < 0 || i >= len(f.rows) {
		return ErrNoSuchPayment
	}
	switch field {
	case PaymentMethod:
		f.rows[i].Method = value
	case PaymentAmount:
		f.rows[i].Amount = value
	case PaymentComment:
		f.rows[i].Comment = value
	default:
		return fmt.Errorf("unknown payment field %q", field)
	}
	return nil
}

// Rows returns a copy of the current rows.
func (f *Financials) Rows() []PaymentRow {
	out := make([]PaymentRow, len(f.rows))
	copy(out, f.rows)
	return out
}

// Validate enforces the commit rule: a row that names a method must carry a
// positive amount. Blank-method rows pass; they are skipped on commit.
func (f *Financials) Validate() error {
	for _, row := range f.rows {
		if row.Method == "" {
			continue
		}
		if !numeric.Parse(row.Amount).IsPositive() {
			return ErrInvalidPayment
		}
	}
	return nil
}

// Committed converts the effective rows into wire payments, dropping inert
// placeholders.
func (f *Financials) Committed() []warehouse.Payment {
	var out []warehouse.Payment
	for _, row := range f.rows {
		if row.Method == "" || row.Amount == "" {
			continue
		}
		amount, _ := numeric.Parse(row.Amount).Float64()
		out = append(out, warehouse.Payment{
			ID:      row.ID,
			Method:  row.Method,
			Amount:  amount,
			Comment: row.Comment,
		})
	}
	return out
}

// PaymentState classifies a persisted order: none without positive payments,
// partial while debt remains, paid once debt is cleared. Debt is user-entered,
// never derived from the payments themselves.
func PaymentState(o warehouse.Order) PayState {
	hasPositive := false
	for _, p := range o.Payments {
		if p.Amount > 0 {
			hasPositive = true
			break
		}
	}
	switch {
	case !hasPositive:
		return PayNone
	case o.Debt > 0:
		return PayPartial
	default:
		return PayPaid
	}
}
