// Package client is the in-process counterpart of the web frontend: it talks
// to the REST API, keeps a cache of fetched catalog items, and is what the
// cart checkout fans its order creations through.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/borbabeats/sistema-comandas/internal/models"
)

// APIError carries the decoded error body of a non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Code)
}

// Menu is a snapshot of the full catalog.
type Menu struct {
	Plates    []models.Plate
	Beverages []models.Beverage
	Desserts  []models.Dessert
}

type Client struct {
	baseURL string
	httpc   *http.Client

	mu   sync.RWMutex
	menu *Menu
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if derr := json.NewDecoder(resp.Body).Decode(&eb); derr == nil {
			apiErr.Code = eb.Error
			apiErr.Message = eb.Message
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) Plates(ctx context.Context) ([]models.Plate, error) {
	var plates []models.Plate
	if err := c.do(ctx, http.MethodGet, "/plates", nil, &plates); err != nil {
		return nil, err
	}
	return plates, nil
}

func (c *Client) Beverages(ctx context.Context) ([]models.Beverage, error) {
	var beverages []models.Beverage
	if err := c.do(ctx, http.MethodGet, "/beverages", nil, &beverages); err != nil {
		return nil, err
	}
	return beverages, nil
}

func (c *Client) Desserts(ctx context.Context) ([]models.Dessert, error) {
	var desserts []models.Dessert
	if err := c.do(ctx, http.MethodGet, "/desserts", nil, &desserts); err != nil {
		return nil, err
	}
	return desserts, nil
}

// Menu returns the cached catalog snapshot, fetching it on first use.
// Use RefreshMenu to force a refetch after catalog edits.
func (c *Client) Menu(ctx context.Context) (*Menu, error) {
	c.mu.RLock()
	cached := c.menu
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return c.RefreshMenu(ctx)
}

func (c *Client) RefreshMenu(ctx context.Context) (*Menu, error) {
	plates, err := c.Plates(ctx)
	if err != nil {
		return nil, err
	}
	beverages, err := c.Beverages(ctx)
	if err != nil {
		return nil, err
	}
	desserts, err := c.Desserts(ctx)
	if err != nil {
		return nil, err
	}
	m := &Menu{Plates: plates, Beverages: beverages, Desserts: desserts}
	c.mu.Lock()
	c.menu = m
	c.mu.Unlock()
	return m, nil
}

func (c *Client) InvalidateMenu() {
	c.mu.Lock()
	c.menu = nil
	c.mu.Unlock()
}

type CreateOrderRequest struct {
	ClientName   string  `json:"clientName"`
	PlateID      *uint   `json:"plateId,omitempty"`
	BeverageID   *uint   `json:"beverageId,omitempty"`
	DessertID    *uint   `json:"dessertId,omitempty"`
	IsPaid       bool    `json:"isPaid"`
	Observations *string `json:"observations,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AdvanceOrderStatus moves an order one step forward on the kitchen board.
func (c *Client) AdvanceOrderStatus(ctx context.Context, id uint, status models.Status) (*models.Order, error) {
	var order models.Order
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/status", id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
