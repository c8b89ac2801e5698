package models

// CartLine is one product entry in the locally persisted cart.
// At most one line exists per ProductID; Quantity is always >= 1 once
// persisted (zero or negative collapses to removal in the cart store).
type CartLine struct {
	ProductID     string  `json:"productID"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`         // unit sale price
	LabelledPrice float64 `json:"labelledPrice"` // strike-through price
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
}

// LineTotal returns Price * Quantity for this line.
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}
