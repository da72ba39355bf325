package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one distinct product held in the cart. Name, slug, price and image
// are a snapshot frozen at add time; they are never reconciled against the
// catalog afterwards.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	ImageRef  string          `json:"imageRef,omitempty"`
	Quantity  int             `json:"quantity"`
}

// ProductSnapshot is the denormalized product data the catalog hands to
// AddItem. The cart trusts it verbatim.
type ProductSnapshot struct {
	ID     string
	Name   string
	Slug   string
	Price  decimal.Decimal
	Images []string
}

func (p ProductSnapshot) imageRef() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Cart is the aggregate of lines a shopper intends to purchase. Lines keep
// insertion order and productIDs stay pairwise distinct. The item count is
// maintained incrementally and always equals the sum of line quantities.
type Cart struct {
	lines      []Line
	totalItems int
}

// addItem merges into an existing line or appends a new one. Quantities
// of zero or less are ignored. Reports whether the cart changed.
func (c *Cart) addItem(product ProductSnapshot, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += quantity
			c.totalItems += quantity
			return true
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: product.ID,
		Name:      product.Name,
		Slug:      product.Slug,
		UnitPrice: product.Price,
		ImageRef:  product.imageRef(),
		Quantity:  quantity,
	})
	c.totalItems += quantity
	return true
}

// updateQuantity replaces a line's quantity. Quantities below one are
// ignored; removal is a distinct operation, the cart never auto-removes on
// zero. Unknown product IDs are ignored.
func (c *Cart) updateQuantity(productID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.totalItems += quantity - c.lines[i].Quantity
			c.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// removeItem drops the line with the given product ID, if present.
func (c *Cart) removeItem(productID string) bool {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.totalItems -= c.lines[i].Quantity
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// clearAll resets the cart to empty.
func (c *Cart) clearAll() {
	c.lines = nil
	c.totalItems = 0
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems returns the cached sum of line quantities.
func (c *Cart) TotalItems() int {
	return c.totalItems
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) snapshot() Snapshot {
	return Snapshot{
		Lines:          c.Lines(),
		TotalItemCount: c.totalItems,
	}
}

func cartFromSnapshot(snap Snapshot) Cart {
	lines := make([]Line, len(snap.Lines))
	copy(lines, snap.Lines)
	return Cart{
		lines:      lines,
		totalItems: snap.TotalItemCount,
	}
}
