// Package session owns the in-memory collections of one editing session and
// runs every save through the warehouse service. Mutations are optimistic:
// local state changes first, the server's echo overwrites it where the server
// answered with one, and remote failures leave local state as it was.
// A session belongs to a single editor; it is not safe for concurrent use.
package session

import (
	"context"
	"errors"

	"github.com/Talonmortem/SHM/internal/orders"
	"github.com/Talonmortem/SHM/internal/shipping"
	"github.com/Talonmortem/SHM/internal/warehouse"

	"go.uber.org/zap"
)

var (
	ErrUnknownOrder     = errors.New("no such order")
	ErrNotReadyToShip   = errors.New("order is not ready to ship")
	ErrNoteDateRequired = errors.New("note date is required")
	ErrNoteTextRequired = errors.New("note text is required")
)

// API is the slice of the warehouse client the session needs.
type API interface {
	ListArticles(ctx context.Context) ([]warehouse.Article, error)
	ListProducts(ctx context.Context) ([]warehouse.Product, error)
	CreateProduct(ctx context.Context, p warehouse.Product) (warehouse.Product, error)
	UpdateProduct(ctx context.Context, id int, p warehouse.Product) (warehouse.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	GenerateProductName(ctx context.Context) (string, error)
	ListOrders(ctx context.Context) ([]warehouse.Order, error)
	CreateOrder(ctx context.Context, o warehouse.Order) (warehouse.Order, error)
	UpdateOrder(ctx context.Context, id int, o warehouse.Order) (*warehouse.Order, error)
	DeleteOrder(ctx context.Context, id int) error
	ListClients(ctx context.Context) ([]warehouse.Customer, error)
	ListShipments(ctx context.Context) ([]warehouse.Shipment, error)
	CreateShipment(ctx context.Context, s warehouse.Shipment) (warehouse.Shipment, error)
	UpdateShipment(ctx context.Context, id int, s warehouse.Shipment) error
	DeleteShipment(ctx context.Context, id int) error
	ListPaymentMethods(ctx context.Context) ([]warehouse.PaymentMethod, error)
	ListPayments(ctx context.Context, method, from, to string) ([]warehouse.Payment, error)
	ListShipmentNotes(ctx context.Context, date string) ([]warehouse.ShipmentNote, error)
	CreateShipmentNote(ctx context.Context, n warehouse.ShipmentNote) (warehouse.ShipmentNote, error)
	UpdateShipmentNote(ctx context.Context, id int, n warehouse.ShipmentNote) error
	DeleteShipmentNote(ctx context.Context, id int) error
	ListBalance(ctx context.Context) ([]warehouse.BalanceRow, error)
}

type Session struct {
	api    API
	logger *zap.Logger

	Articles       []warehouse.Article
	Products       []warehouse.Product
	Orders         []warehouse.Order
	Clients        []warehouse.Customer
	Shipments      []warehouse.Shipment
	PaymentMethods []string
}

func New(api API, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{api: api, logger: logger.Named("session")}
}

// Refresh loads the primary collections. Client cards and payment methods are
// auxiliary: when their lookups fail the feature is simply empty and the
// session keeps working.
func (s *Session) Refresh(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return err
	}
	articles, err := s.api.ListArticles(ctx)
	if err != nil {
		return err
	}
	orderList, err := s.api.ListOrders(ctx)
	if err != nil {
		return err
	}
	shipments, err := s.api.ListShipments(ctx)
	if err != nil {
		return err
	}
	s.Products = products
	s.Articles = articles
	s.Orders = orderList
	s.Shipments = shipments

	if clients, err := s.api.ListClients(ctx); err != nil {
		s.logger.Warn("client list unavailable", zap.Error(err))
		s.Clients = nil
	} else {
		s.Clients = clients
	}
	if methods, err := s.api.ListPaymentMethods(ctx); err != nil {
		s.logger.Warn("payment methods unavailable", zap.Error(err))
		s.PaymentMethods = nil
	} else {
		names := make([]string, 0, len(methods))
		for _, m := range methods {
			names = append(names, m.Method)
		}
		s.PaymentMethods = names
	}
	return nil
}

// ProductIndex returns the products keyed by id, the shape the order draft
// validation wants.
func (s *Session) ProductIndex() map[int]warehouse.Product {
	idx := make(map[int]warehouse.Product, len(s.Products))
	for _, p := range s.Products {
		idx[p.ID] = p
	}
	return idx
}

// SuggestedName asks the service for a default product name and fails open:
// a broken generator just means an empty suggestion.
func (s *Session) SuggestedName(ctx context.Context) string {
	name, err := s.api.GenerateProductName(ctx)
	if err != nil {
		s.logger.Warn("name generator unavailable", zap.Error(err))
		return ""
	}
	return name
}

// SaveProduct creates or updates a product and reconciles with the echoed
// record. Saving consumes article stock server-side and may ripple into order
// snapshots, so both collections are refreshed afterwards (best effort).
func (s *Session) SaveProduct(ctx context.Context, p warehouse.Product) (warehouse.Product, error) {
	var (
		saved warehouse.Product
		err   error
	)
	if p.ID == 0 {
		saved, err = s.api.CreateProduct(ctx, p)
	} else {
		saved, err = s.api.UpdateProduct(ctx, p.ID, p)
	}
	if err != nil {
		return warehouse.Product{}, err
	}
	if saved.ID == 0 {
		saved = p
	}
	s.upsertProduct(saved)

	if articles, err := s.api.ListArticles(ctx); err == nil {
		s.Articles = articles
	} else {
		s.logger.Warn("article refresh failed", zap.Error(err))
	}
	if p.ID != 0 {
		if orderList, err := s.api.ListOrders(ctx); err == nil {
			s.Orders = orderList
		} else {
			s.logger.Warn("order refresh failed", zap.Error(err))
		}
	}
	return saved, nil
}

func (s *Session) DeleteProduct(ctx context.Context, id int) error {
	if err := s.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	kept := s.Products[:0]
	for _, p := range s.Products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.Products = kept
	if articles, err := s.api.ListArticles(ctx); err == nil {
		s.Articles = articles
	}
	return nil
}

// CommitOrder validates the draft locally (a failing draft never reaches the
// network), persists it, and reconciles with the authoritative echo. Newly
// ordered products are marked reserved in the local catalog, mirroring what
// the service does on its side.
func (s *Session) CommitOrder(ctx context.Context, d *orders.Draft) (warehouse.Order, error) {
	payload, err := d.Payload(s.ProductIndex())
	if err != nil {
		return warehouse.Order{}, err
	}

	if d.ID == 0 {
		created, err := s.api.CreateOrder(ctx, payload)
		if err != nil {
			return warehouse.Order{}, err
		}
		canonical := orders.MergeEcho(payload, &created)
		s.Orders = append(s.Orders, canonical)
		s.reserveProducts(d.Composition.Effective())
		return canonical, nil
	}

	echo, err := s.api.UpdateOrder(ctx, d.ID, payload)
	if err != nil {
		return warehouse.Order{}, err
	}
	canonical := orders.MergeEcho(payload, echo)
	for i, o := range s.Orders {
		if o.ID == d.ID {
			s.Orders[i] = canonical
			break
		}
	}
	return canonical, nil
}

func (s *Session) DeleteOrder(ctx context.Context, id int) error {
	if err := s.api.DeleteOrder(ctx, id); err != nil {
		return err
	}
	kept := s.Orders[:0]
	for _, o := range s.Orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	s.Orders = kept
	return nil
}

// ShipmentDraftFromOrder opens a pre-filled shipment draft for an order that
// is at least ready to ship.
func (s *Session) ShipmentDraftFromOrder(orderID int, defaultDate string) (*shipping.Draft, error) {
	for _, o := range s.Orders {
		if o.ID == orderID {
			if o.Status < warehouse.OrderReadyToShip {
				return nil, ErrNotReadyToShip
			}
			return shipping.DraftFromOrder(o, defaultDate), nil
		}
	}
	return nil, ErrUnknownOrder
}

// SubmitShipment persists a shipment draft. The draft is discarded by the
// caller on success; an invalid draft stays open and untransmitted.
func (s *Session) SubmitShipment(ctx context.Context, d *shipping.Draft) (warehouse.Shipment, error) {
	payload, err := d.Payload()
	if err != nil {
		return warehouse.Shipment{}, err
	}
	if d.ID == 0 {
		created, err := s.api.CreateShipment(ctx, payload)
		if err != nil {
			return warehouse.Shipment{}, err
		}
		if created.ID == 0 {
			created = payload
		}
		s.Shipments = append([]warehouse.Shipment{created}, s.Shipments...)
		return created, nil
	}
	if err := s.api.UpdateShipment(ctx, d.ID, payload); err != nil {
		return warehouse.Shipment{}, err
	}
	for i, sh := range s.Shipments {
		if sh.ID == d.ID {
			s.Shipments[i] = payload
			break
		}
	}
	return payload, nil
}

func (s *Session) DeleteShipment(ctx context.Context, id int) error {
	if err := s.api.DeleteShipment(ctx, id); err != nil {
		return err
	}
	kept := s.Shipments[:0]
	for _, sh := range s.Shipments {
		if sh.ID != id {
			kept = append(kept, sh)
		}
	}
	s.Shipments = kept
	return nil
}

// Payments returns the payment ledger filtered by method and date range.
// Empty filters mean "everything".
func (s *Session) Payments(ctx context.Context, method, from, to string) ([]warehouse.Payment, error) {
	return s.api.ListPayments(ctx, method, from, to)
}

// DayNotes lists the notes of one calendar day.
func (s *Session) DayNotes(ctx context.Context, date string) ([]warehouse.ShipmentNote, error) {
	return s.api.ListShipmentNotes(ctx, date)
}

// SaveNote creates or updates a day note and returns the notes of its day.
func (s *Session) SaveNote(ctx context.Context, n warehouse.ShipmentNote) ([]warehouse.ShipmentNote, error) {
	if n.ShipDate == "" {
		return nil, ErrNoteDateRequired
	}
	if n.Note == "" {
		return nil, ErrNoteTextRequired
	}
	if n.ID == 0 {
		if _, err := s.api.CreateShipmentNote(ctx, n); err != nil {
			return nil, err
		}
	} else if err := s.api.UpdateShipmentNote(ctx, n.ID, n); err != nil {
		return nil, err
	}
	return s.api.ListShipmentNotes(ctx, n.ShipDate)
}

func (s *Session) DeleteNote(ctx context.Context, id int) error {
	return s.api.DeleteShipmentNote(ctx, id)
}

// Balance fetches the stock balance report.
func (s *Session) Balance(ctx context.Context) ([]warehouse.BalanceRow, error) {
	return s.api.ListBalance(ctx)
}

func (s *Session) upsertProduct(p warehouse.Product) {
	for i, existing := range s.Products {
		if existing.ID == p.ID {
			s.Products[i] = p
			return
		}
	}
	s.Products = append(s.Products, p)
}

func (s *Session) reserveProducts(ids []int) {
	reserved := make(map[int]bool, len(ids))
	for _, id := range ids {
		reserved[id] = true
	}
	for i, p := range s.Products {
		if reserved[p.ID] {
			s.Products[i].Status = warehouse.ProductReserved
		}
	}
}
