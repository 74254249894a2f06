// Package shipping builds shipment drafts. Place count, price and weight
// mirror the source order's components until the editor touches them; a
// touched field keeps its manual value for the rest of the draft's life.
package shipping

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Talonmortem/SHM/internal/numeric"
	"github.com/Talonmortem/SHM/internal/warehouse"

	"github.com/shopspring/decimal"
)

var (
	ErrDateRequired     = errors.New("ship date is required")
	ErrFullNameRequired = errors.New("full name is required")
)

// AutoField names the three derivable draft fields.
type AutoField string

const (
	FieldPlaces AutoField = "places"
	FieldPrice  AutoField = "price"
	FieldWeight AutoField = "weight"
)

// Overrides records which auto fields the editor has touched in this draft.
// The flags live and die with the draft: opening a new one resets them.
type Overrides struct {
	Places bool
	Price  bool
	Weight bool
}

// Draft is a shipment form in progress. The numeric fields stay raw strings
// until Payload normalizes them.
type Draft struct {
	ID          int
	ShipDate    string
	City        string
	FullName    string
	Phone       string
	PassportInn string
	TK          string
	Places      string
	Price       string
	Weight      string

	overrides Overrides
}

// NewDraft opens a blank shipment form, optionally pre-dated with the
// calendar's active day.
func NewDraft(defaultDate string) *Draft {
	return &Draft{ShipDate: defaultDate}
}

// DraftFromShipment opens a persisted shipment for editing. Its stored values
// are the editor's own, so all auto fields count as already touched.
func DraftFromShipment(s warehouse.Shipment) *Draft {
	return &Draft{
		ID:          s.ID,
		ShipDate:    s.ShipDate,
		City:        s.City,
		FullName:    s.FullName,
		Phone:       s.Phone,
		PassportInn: s.PassportInn,
		TK:          s.TK,
		Places:      strconv.Itoa(s.Places),
		Price:       decimal.NewFromFloat(s.Price).String(),
		Weight:      decimal.NewFromFloat(s.Weight).String(),
		overrides:   Overrides{Places: true, Price: true, Weight: true},
	}
}

// DraftFromOrder opens a fresh draft pre-filled from an order's components.
func DraftFromOrder(o warehouse.Order, defaultDate string) *Draft {
	d := NewDraft(defaultDate)
	d.Recompute(o.Components)
	return d
}

// SetAuto writes an auto field by hand and pins it for this draft.
func (d *Draft) SetAuto(field AutoField, value string) {
	switch field {
	case FieldPlaces:
		d.Places = value
		d.overrides.Places = true
	case FieldPrice:
		d.Price = value
		d.overrides.Price = true
	case FieldWeight:
		d.Weight = value
		d.overrides.Weight = true
	}
}

// Recompute refreshes the untouched auto fields from the order's effective
// components: places is the component count, price and weight their sums.
// Pinned fields keep the editor's value.
func (d *Draft) Recompute(components []warehouse.Product) {
	if !d.overrides.Places {
		d.Places = decimal.NewFromInt(int64(len(components))).String()
	}
	if !d.overrides.Price {
		total := decimal.Zero
		for _, p := range components {
			total = total.Add(numeric.Parse(p.SummaRubSoSkidkoj))
		}
		d.Price = numeric.Fixed2(numeric.Round2(total))
	}
	if !d.overrides.Weight {
		total := decimal.Zero
		for _, p := range components {
			total = total.Add(numeric.Parse(p.Weight))
		}
		d.Weight = numeric.Round2(total).String()
	}
}

// Overridden reports the pinned flags, mostly for display.
func (d *Draft) Overridden() Overrides {
	return d.overrides
}

// Validate enforces the submit gate: a date and a recipient name.
func (d *Draft) Validate() error {
	if d.ShipDate == "" {
		return ErrDateRequired
	}
	if strings.TrimSpace(d.FullName) == "" {
		return ErrFullNameRequired
	}
	return nil
}

// Payload validates the draft and normalizes it into the wire record.
// Places truncates to a whole number on persist.
func (d *Draft) Payload() (warehouse.Shipment, error) {
	if err := d.Validate(); err != nil {
		return warehouse.Shipment{}, err
	}
	price, _ := numeric.Parse(d.Price).Float64()
	weight, _ := numeric.Parse(d.Weight).Float64()
	return warehouse.Shipment{
		ID:          d.ID,
		ShipDate:    d.ShipDate,
		City:        d.City,
		FullName:    d.FullName,
		Phone:       d.Phone,
		PassportInn: d.PassportInn,
		TK:          d.TK,
		Places:      int(numeric.Parse(d.Places).IntPart()),
		Price:       price,
		Weight:      weight,
	}, nil
}
