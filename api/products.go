package api

import (
	"context"
	"net/http"

	"github.com/snapsite-dev/storefront-client/models"
)

// GET /api/products
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GET /api/products/:id
func (c *Client) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+productID, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// POST /api/products (admin)
func (c *Client) CreateProduct(ctx context.Context, product models.Product) error {
	return c.do(ctx, http.MethodPost, "/api/products", nil, product, nil)
}

// DELETE /api/products/:id (admin)
func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+productID, nil, nil, nil)
}
