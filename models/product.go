package models

import "time"

type Product struct {
	ProductID     string    `json:"productID"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`         // current sale price
	LabelledPrice float64   `json:"labelledPrice"` // pre-discount price
	Images        []string  `json:"images"`
	Category      string    `json:"category,omitempty"`
	Stock         int       `json:"stock"`
	IsAvailable   bool      `json:"isAvailable"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// ToCartLine converts a product into a cart line carrying the given
// quantity. The first image is used as the line thumbnail.
func (p Product) ToCartLine(quantity int) CartLine {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return CartLine{
		ProductID:     p.ProductID,
		Name:          p.Name,
		Price:         p.Price,
		LabelledPrice: p.LabelledPrice,
		Image:         image,
		Quantity:      quantity,
	}
}
