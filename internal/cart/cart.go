// Package cart holds the pending line items of a checkout session. Carts
// live in memory only; stock is reserved for display and is written to the
// store by checkout.
package cart

import (
	"sync"

	"github.com/fekuna/omnipos-poultry-service/internal/apperror"
	"github.com/fekuna/omnipos-poultry-service/internal/model"
	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals sums the lines and applies taxRate. Only the tax is
// rounded, half away from zero to cents.
func ComputeTotals(lines []Line, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

type Cart struct {
	mu         sync.Mutex
	lines      []Line
	knownStock map[string]int
}

func New() *Cart {
	return &Cart{knownStock: make(map[string]int)}
}

// AddItem reserves quantity units of p. The unit price captured on the first
// add of a product is kept for later adds of the same product.
func (c *Cart) AddItem(p *model.Product, quantity int) error {
	if quantity <= 0 {
		return apperror.InvalidQuantity(quantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(p.ID)
	reserved := 0
	if idx >= 0 {
		reserved = c.lines[idx].Quantity
	}

	available := p.Stock - reserved
	if quantity > available {
		if available < 0 {
			available = 0
		}
		return apperror.InsufficientStock(p.Name, quantity, available)
	}

	c.knownStock[p.ID] = p.Stock
	if idx >= 0 {
		c.lines[idx].Quantity += quantity
		return nil
	}
	c.lines = append(c.lines, Line{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.Price,
		Quantity:    quantity,
	})
	return nil
}

// RemoveItem drops the line for productID, releasing its reservation.
func (c *Cart) RemoveItem(productID string) (Line, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(productID)
	if idx < 0 {
		return Line{}, apperror.NotFound("cart line for product", productID)
	}
	removed := c.lines[idx]
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return removed, nil
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Checkout hands a copy of the lines to place and empties the cart only if
// place succeeds. The cart stays locked while place runs, so a second
// checkout waits and then sees the emptied cart, and adds made meanwhile
// land after the clear instead of being lost by it. place must not call
// back into the cart.
func (c *Cart) Checkout(place func(lines []Line) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	if err := place(lines); err != nil {
		return err
	}
	c.lines = nil
	return nil
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Reserved is the quantity of productID currently held in the cart.
func (c *Cart) Reserved(productID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexOf(productID); idx >= 0 {
		return c.lines[idx].Quantity
	}
	return 0
}

// Available is the last known stock of productID minus the cart's
// reservation. ok is false for products the cart has never seen.
func (c *Cart) Available(productID string) (available int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stock, ok := c.knownStock[productID]
	if !ok {
		return 0, false
	}
	if idx := c.indexOf(productID); idx >= 0 {
		stock -= c.lines[idx].Quantity
	}
	return stock, true
}

func (c *Cart) ComputeTotals(taxRate decimal.Decimal) Totals {
	return ComputeTotals(c.Lines(), taxRate)
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
