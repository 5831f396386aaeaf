// Package cart is the staging area for catalog items before checkout. It is
// never persisted server-side: checkout turns each line into an independent
// order-create call.
package cart

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/borbabeats/sistema-comandas/internal/client"
	"github.com/borbabeats/sistema-comandas/internal/models"
)

// ItemKind names which catalog table a line points into.
type ItemKind string

const (
	KindPlate    ItemKind = "plate"
	KindBeverage ItemKind = "beverage"
	KindDessert  ItemKind = "dessert"
)

// Line is one cart entry: a catalog item reference with a quantity and
// optional free-text observations.
type Line struct {
	Kind         ItemKind `json:"kind"`
	ItemID       uint     `json:"itemId"`
	Name         string   `json:"name"`
	UnitPrice    float64  `json:"unitPrice"`
	Quantity     int      `json:"quantity"`
	Observations string   `json:"observations,omitempty"`
}

// Cart holds the lines in insertion order, keyed by (kind, item id).
// All mutations are serialized so concurrent adds of the same item merge
// into one line.
type Cart struct {
	mu    sync.Mutex
	lines []Line
}

func New() *Cart { return &Cart{} }

func (c *Cart) find(kind ItemKind, itemID uint) int {
	for i := range c.lines {
		if c.lines[i].Kind == kind && c.lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

// Add puts an item in the cart. Adding an item that is already present
// increments its quantity by qty; a first add always starts the line at
// quantity 1 regardless of qty.
func (c *Cart) Add(kind ItemKind, itemID uint, name string, unitPrice float64, qty int) {
	if qty < 1 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(kind, itemID); i >= 0 {
		c.lines[i].Quantity += qty
		return
	}
	c.lines = append(c.lines, Line{Kind: kind, ItemID: itemID, Name: name, UnitPrice: unitPrice, Quantity: 1})
}

// Remove drops the line; removing an absent item is a no-op.
func (c *Cart) Remove(kind ItemKind, itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(kind, itemID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// SetQuantity sets the line quantity; zero or negative removes the line.
func (c *Cart) SetQuantity(kind ItemKind, itemID uint, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.find(kind, itemID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
	c.lines[i].Quantity = qty
}

// SetObservations attaches free text to the line.
func (c *Cart) SetObservations(kind ItemKind, itemID uint, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.find(kind, itemID); i >= 0 {
		c.lines[i].Observations = text
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, l := range c.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// Save writes the cart lines to path as JSON, the moral equivalent of the
// browser's local-storage persistence.
func (c *Cart) Save(path string) error {
	data, err := json.MarshalIndent(c.Lines(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load replaces the cart contents with the lines stored at path.
func (c *Cart) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.mu.Lock()
	c.lines = lines
	c.mu.Unlock()
	return nil
}

// OrderPlacer is the slice of the API client checkout needs.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, req client.CreateOrderRequest) (*models.Order, error)
}

// CheckoutResult reports the outcome of one line's order-create call.
type CheckoutResult struct {
	Line  Line
	Order *models.Order
	Err   error
}

// Checkout issues one order-create call per cart line, all concurrently,
// with the line's item id placed in the slot matching its kind. The fan-out
// is best-effort: there is no ordering guarantee among the calls and no
// rollback of lines that succeeded when another fails. The cart is left
// untouched; callers clear it once they accept the results.
func (c *Cart) Checkout(ctx context.Context, placer OrderPlacer, clientName string) []CheckoutResult {
	lines := c.Lines()
	results := make([]CheckoutResult, len(lines))
	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line Line) {
			defer wg.Done()
			req := client.CreateOrderRequest{ClientName: clientName}
			if line.Observations != "" {
				obs := line.Observations
				req.Observations = &obs
			}
			id := line.ItemID
			switch line.Kind {
			case KindPlate:
				req.PlateID = &id
			case KindBeverage:
				req.BeverageID = &id
			case KindDessert:
				req.DessertID = &id
			}
			order, err := placer.CreateOrder(ctx, req)
			results[i] = CheckoutResult{Line: line, Order: order, Err: err}
		}(i, line)
	}
	wg.Wait()
	return results
}
