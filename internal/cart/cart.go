package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one item entry in a cart. A cart holds at most one line per item;
// quantity is always at least 1.
type Line struct {
	ItemID   uuid.UUID       `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
	Quantity int             `json:"quantity"`
}

// Subtotal is the line's price multiplied by its quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the full shopping cart for one browser session. Lines keep their
// insertion order so the storefront renders them stably.
type Cart struct {
	Lines []Line `json:"lines"`
}

// LineItem carries the catalog fields a cart line snapshots on add.
type LineItem struct {
	ItemID   uuid.UUID
	Name     string
	Price    decimal.Decimal
	ImageURL string
}

// AddItem increments the quantity of an existing line or appends a new line
// with quantity 1.
func (c *Cart) AddItem(item LineItem) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == item.ItemID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ItemID:   item.ItemID,
		Name:     item.Name,
		Price:    item.Price,
		ImageURL: item.ImageURL,
		Quantity: 1,
	})
}

// RemoveItem deletes the line for the given item. Removing an absent item is
// a no-op.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity to the given absolute value. A
// quantity of zero or less removes the line.
func (c *Cart) UpdateQuantity(itemID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(itemID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalItems is the sum of all line quantities, not the number of lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the exact sum of price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
