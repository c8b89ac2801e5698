package cart

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/snapsite-dev/storefront-client/models"
	"github.com/snapsite-dev/storefront-client/storage"
)

// Cart manages the locally persisted shopping cart. Every mutation loads
// the full cart, applies the change and writes the whole cart back; there
// is no batching and no error path surfaced to callers (malformed input is
// coerced, write failures are logged).
type Cart struct {
	store storage.Store
}

func New(store storage.Store) *Cart {
	return &Cart{store: store}
}

// Load reads the persisted cart. An absent or unparsable cart yields an
// empty slice, never an error.
func (c *Cart) Load() []models.CartLine {
	raw, err := c.store.Get(storage.KeyCart)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("❌ Failed to read cart, starting empty: %v", err)
		}
		return []models.CartLine{}
	}

	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		log.Printf("❌ Corrupt cart data, starting empty: %v", err)
		return []models.CartLine{}
	}
	return lines
}

// Add applies a quantity delta for the given product and returns the
// updated cart. A new line is inserted when the product is absent and the
// delta is positive; an existing line whose quantity drops to zero or
// below is removed entirely. A zero delta is coerced to 1, matching the
// "add one to cart" default.
func (c *Cart) Add(item models.CartLine, delta int) []models.CartLine {
	if delta == 0 {
		delta = 1
	}

	lines := c.Load()

	found := -1
	for i, line := range lines {
		if line.ProductID == item.ProductID {
			found = i
			break
		}
	}

	if found == -1 {
		if delta > 0 {
			item.Quantity = delta
			lines = append(lines, item)
		}
	} else {
		lines[found].Quantity += delta
		if lines[found].Quantity <= 0 {
			lines = append(lines[:found], lines[found+1:]...)
		}
	}

	c.save(lines)
	return lines
}

// Remove drops the product's line regardless of its quantity.
func (c *Cart) Remove(productID string) []models.CartLine {
	lines := c.Load()
	for _, line := range lines {
		if line.ProductID == productID {
			return c.Add(line, -line.Quantity)
		}
	}
	return lines
}

// Clear empties the cart.
func (c *Cart) Clear() {
	if err := c.store.Delete(storage.KeyCart); err != nil {
		log.Printf("❌ Failed to clear cart: %v", err)
	}
}

// Total sums Price * Quantity over the persisted cart; an empty cart
// totals 0.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Load() {
		total += line.LineTotal()
	}
	return total
}

func (c *Cart) save(lines []models.CartLine) {
	data, err := json.Marshal(lines)
	if err != nil {
		log.Printf("❌ Failed to encode cart: %v", err)
		return
	}
	if err := c.store.Set(storage.KeyCart, string(data)); err != nil {
		log.Printf("❌ Failed to write cart: %v", err)
	}
}
