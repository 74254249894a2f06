// Package warehouse is the typed client for the SHM CRUD service. Every call
// carries the bearer credential, the acting username, and a fresh request id;
// failure bodies are decoded so the server's error text reaches the user
// verbatim.
package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Talonmortem/SHM/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultBaseURL = "http://localhost:8080"

var (
	ErrMissingToken    = errors.New("warehouse api token is required")
	ErrMissingUsername = errors.New("warehouse username is required")
	ErrUnauthorized    = errors.New("warehouse unauthorized")
)

// APIError carries a non-2xx response. Message is the server's own error text
// when it sent one.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("warehouse api error: %s", e.Status)
	}
	return e.Message
}

type Client struct {
	http   *resty.Client
	actor  string
	logger *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	baseURL := strings.TrimSpace(cfg.APIBaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(1).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil
		}).
		OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			req.SetHeader("X-Request-ID", uuid.NewString())
			return nil
		})

	if cfg.APIToken != "" {
		httpClient.SetAuthScheme("Bearer")
		httpClient.SetAuthToken(cfg.APIToken)
	}
	if cfg.Username != "" {
		httpClient.SetHeader("X-Username", cfg.Username)
	}

	return &Client{
		http:   httpClient,
		actor:  strings.TrimSpace(cfg.Username),
		logger: logger.Named("warehouse"),
	}
}

func (c *Client) ListArticles(ctx context.Context) ([]Article, error) {
	var out []Article
	if err := c.do(ctx, http.MethodGet, "/api/articles", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateArticle registers a newly received supply lot.
func (c *Client) CreateArticle(ctx context.Context, a Article) (Article, error) {
	var out Article
	if err := c.do(ctx, http.MethodPost, "/api/articles", nil, a, &out); err != nil {
		return Article{}, err
	}
	return out, nil
}

// UpdateArticle rewrites an article record. The path id is the service-side
// id, not the local row id.
func (c *Client) UpdateArticle(ctx context.Context, id int, a Article) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/articles/%d", id), nil, a, nil)
}

func (c *Client) DeleteArticle(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/articles/%d", id), nil, nil, nil)
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateProduct(ctx context.Context, p Product) (Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "/api/products", nil, p, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, p Product) (Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), nil, p, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil, nil, nil)
}

// GenerateProductName asks the service for a default name for a new product.
func (c *Client) GenerateProductName(ctx context.Context) (string, error) {
	var out generatedName
	if err := c.do(ctx, http.MethodGet, "/api/products/generate-name", nil, nil, &out); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.Name), nil
}

func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, o Order) (Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", nil, o, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

// UpdateOrder returns the authoritative order echoed by the service. The
// update route wraps it as {"order": ...}; a nil echo means the service
// answered without a body and the caller keeps its optimistic copy.
func (c *Client) UpdateOrder(ctx context.Context, id int, o Order) (*Order, error) {
	var out orderEnvelope
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/orders/%d", id), nil, o, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/orders/%d", id), nil, nil, nil)
}

func (c *Client) ListClients(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.do(ctx, http.MethodGet, "/api/clients", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateClient(ctx context.Context, cl Customer) (Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodPost, "/api/clients", nil, cl, &out); err != nil {
		return Customer{}, err
	}
	return out, nil
}

func (c *Client) UpdateClient(ctx context.Context, id int, cl Customer) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/clients/%d", id), nil, cl, nil)
}

func (c *Client) DeleteClient(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/clients/%d", id), nil, nil, nil)
}

func (c *Client) ListShipments(ctx context.Context) ([]Shipment, error) {
	var out []Shipment
	if err := c.do(ctx, http.MethodGet, "/api/shipments", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateShipment(ctx context.Context, s Shipment) (Shipment, error) {
	var out Shipment
	if err := c.do(ctx, http.MethodPost, "/api/shipments", nil, s, &out); err != nil {
		return Shipment{}, err
	}
	return out, nil
}

func (c *Client) UpdateShipment(ctx context.Context, id int, s Shipment) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/shipments/%d", id), nil, s, nil)
}

func (c *Client) DeleteShipment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/shipments/%d", id), nil, nil, nil)
}

func (c *Client) ListPaymentMethods(ctx context.Context) ([]PaymentMethod, error) {
	var out []PaymentMethod
	if err := c.do(ctx, http.MethodGet, "/api/payment_methods", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListPayments(ctx context.Context, method, from, to string) ([]Payment, error) {
	query := map[string]string{}
	if method != "" {
		query["method"] = method
	}
	if from != "" {
		query["from"] = from
	}
	if to != "" {
		query["to"] = to
	}
	var out []Payment
	if err := c.do(ctx, http.MethodGet, "/api/payments", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePayment(ctx context.Context, p Payment) (Payment, error) {
	var out Payment
	if err := c.do(ctx, http.MethodPost, "/api/payments", nil, p, &out); err != nil {
		return Payment{}, err
	}
	return out, nil
}

func (c *Client) UpdatePayment(ctx context.Context, id int, p Payment) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/payments/%d", id), nil, p, nil)
}

func (c *Client) DeletePayment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/payments/%d", id), nil, nil, nil)
}

// ListShipmentNotes returns the notes attached to one calendar day.
func (c *Client) ListShipmentNotes(ctx context.Context, date string) ([]ShipmentNote, error) {
	var out []ShipmentNote
	if err := c.do(ctx, http.MethodGet, "/api/shipment_notes", map[string]string{"date": date}, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateShipmentNote(ctx context.Context, n ShipmentNote) (ShipmentNote, error) {
	var out ShipmentNote
	if err := c.do(ctx, http.MethodPost, "/api/shipment_notes", nil, n, &out); err != nil {
		return ShipmentNote{}, err
	}
	return out, nil
}

func (c *Client) UpdateShipmentNote(ctx context.Context, id int, n ShipmentNote) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/shipment_notes/%d", id), nil, n, nil)
}

func (c *Client) DeleteShipmentNote(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/shipment_notes/%d", id), nil, nil, nil)
}

func (c *Client) ListBalance(ctx context.Context) ([]BalanceRow, error) {
	var out []BalanceRow
	if err := c.do(ctx, http.MethodGet, "/api/balance", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, result any) error {
	if strings.TrimSpace(c.http.Token) == "" {
		return ErrMissingToken
	}
	if c.actor == "" {
		return ErrMissingUsername
	}

	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("warehouse request: %w", err)
	}
	if resp.IsError() {
		apiErr := apiErrorFromResponse(resp)
		c.logger.Warn("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.Error(apiErr),
		)
		return apiErr
	}
	return nil
}

func apiErrorFromResponse(resp *resty.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Message:    serverErrorText(resp.Body()),
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Error())
	default:
		return apiErr
	}
}

// serverErrorText pulls the "error" field out of a failure body, if there is
// one to pull.
func serverErrorText(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}
