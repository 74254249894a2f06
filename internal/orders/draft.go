package orders

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Talonmortem/SHM/internal/numeric"
	"github.com/Talonmortem/SHM/internal/warehouse"
)

var (
	ErrNameRequired = errors.New("order name is required")
	ErrNoComponents = errors.New("at least one product must be selected")
	ErrMissingGoods = errors.New("some selected products are not available")
)

// Draft is an order being created or edited. Nothing here talks to the
// network; Payload produces the record the session sends.
type Draft struct {
	ID          int // zero while the order is unsaved
	Name        string
	Description string
	Status      int
	Debt        string // user-entered, parsed on commit

	Composition *Composition
	Financials  *Financials
}

// NewDraft opens an empty draft for a brand-new order.
func NewDraft() *Draft {
	return &Draft{
		Status:      warehouse.OrderNew,
		Debt:        "0",
		Composition: NewComposition(nil),
		Financials:  NewFinancials(),
	}
}

// DraftFromOrder opens a persisted order for editing. Its current components
// become the draft's original membership, which is what gates the
// pending-removal protocol.
func DraftFromOrder(o warehouse.Order) *Draft {
	ids := make([]int, 0, len(o.Components))
	for _, p := range o.Components {
		ids = append(ids, p.ID)
	}
	return &Draft{
		ID:          o.ID,
		Name:        o.Name,
		Description: o.Description,
		Status:      o.Status,
		Debt:        strconv.FormatFloat(o.Debt, 'f', -1, 64),
		Composition: NewComposition(ids),
		Financials:  FinancialsFromOrder(o),
	}
}

// Validate runs every local commit gate: non-empty name, well-formed payment
// rows, a non-empty effective component set, and every effective id resolvable
// against the known products. A failing draft never reaches the network.
func (d *Draft) Validate(products map[int]warehouse.Product) error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	if err := d.Financials.Validate(); err != nil {
		return err
	}
	effective := d.Composition.Effective()
	if len(effective) == 0 {
		return ErrNoComponents
	}
	for _, id := range effective {
		if _, ok := products[id]; !ok {
			return fmt.Errorf("%w: %d", ErrMissingGoods, id)
		}
	}
	return nil
}

// Payload validates the draft and assembles the order record to persist.
// Components are embedded as snapshots of the products at commit time, and
// pending removals are excluded; the service handles their unreservation.
func (d *Draft) Payload(products map[int]warehouse.Product) (warehouse.Order, error) {
	if err := d.Validate(products); err != nil {
		return warehouse.Order{}, err
	}

	effective := d.Composition.Effective()
	components := make([]warehouse.Product, 0, len(effective))
	for _, id := range effective {
		components = append(components, products[id])
	}

	debt, _ := numeric.Parse(d.Debt).Float64()
	return warehouse.Order{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Status:      d.Status,
		Components:  components,
		Quantity:    len(components),
		Payments:    d.Financials.Committed(),
		Debt:        debt,
	}, nil
}

// MergeEcho reconciles the optimistic local order with the authoritative echo
// from the service. An echo wins wherever it is present; without one the
// optimistic record stands as-is.
func MergeEcho(local warehouse.Order, echo *warehouse.Order) warehouse.Order {
	if echo == nil {
		return local
	}
	merged := *echo
	if merged.ID == 0 {
		merged.ID = local.ID
	}
	if merged.Components == nil {
		merged.Components = local.Components
	}
	if merged.Payments == nil {
		merged.Payments = local.Payments
	}
	return merged
}
