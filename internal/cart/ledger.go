package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/maisonvela/vela-backend/internal/catalog"
)

// Key uniquely identifies a cart line. Two lines never share a key.
type Key struct {
	ProductID uuid.UUID
	Size      string
	Color     string
}

// Line is one cart entry. Product carries the live catalog projection, so
// line and cart totals always reflect current pricing.
type Line struct {
	Product  catalog.Product `json:"product"`
	Size     string          `json:"size"`
	Color    string          `json:"color"`
	Quantity int             `json:"quantity"`
}

// Key returns the line's uniqueness key.
func (l Line) Key() Key {
	return Key{ProductID: l.Product.ID, Size: l.Size, Color: l.Color}
}

// LineTotal is quantity times the product's effective price.
func (l Line) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger accumulates cart lines with quantity-merge semantics. It preserves
// insertion order and is not safe for concurrent use; each request works on
// its own rehydrated copy.
type Ledger struct {
	lines []Line
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add merges qty into an existing line with the same key, or appends a new
// line. Quantities below one are coerced to one. Stock is not checked here.
func (g *Ledger) Add(product catalog.Product, size, color string, qty int) {
	if qty < 1 {
		qty = 1
	}
	key := Key{ProductID: product.ID, Size: size, Color: color}
	for i := range g.lines {
		if g.lines[i].Key() == key {
			g.lines[i].Quantity += qty
			return
		}
	}
	g.lines = append(g.lines, Line{Product: product, Size: size, Color: color, Quantity: qty})
}

// UpdateQuantity sets a line's quantity to an absolute value. Zero or
// negative removes the line. Missing keys are a no-op.
func (g *Ledger) UpdateQuantity(productID uuid.UUID, size, color string, qty int) {
	key := Key{ProductID: productID, Size: size, Color: color}
	if qty <= 0 {
		g.Remove(productID, size, color)
		return
	}
	for i := range g.lines {
		if g.lines[i].Key() == key {
			g.lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes the matching line. No-op if absent.
func (g *Ledger) Remove(productID uuid.UUID, size, color string) {
	key := Key{ProductID: productID, Size: size, Color: color}
	for i := range g.lines {
		if g.lines[i].Key() == key {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)
			return
		}
	}
}

// Clear drops every line.
func (g *Ledger) Clear() {
	g.lines = nil
}

// Lines returns the cart lines in insertion order.
func (g *Ledger) Lines() []Line {
	return append([]Line(nil), g.lines...)
}

// IsEmpty reports whether the ledger has no lines.
func (g *Ledger) IsEmpty() bool {
	return len(g.lines) == 0
}

// TotalItems sums line quantities.
func (g *Ledger) TotalItems() int {
	total := 0
	for _, line := range g.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums line totals at current effective prices.
func (g *Ledger) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range g.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}
