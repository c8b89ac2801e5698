package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/snapsite-dev/storefront-client/models"
)

// POST /api/orders (auth)
func (c *Client) PlaceOrder(ctx context.Context, order *models.Order) error {
	return c.do(ctx, http.MethodPost, "/api/orders", nil, order, nil)
}

// PlaceWebOrder submits a website order as multipart form data: the order
// payload as a JSON field, the website form fields, and the logo file when
// one was chosen.
// POST /api/orders/weborder (auth)
func (c *Client) PlaceWebOrder(ctx context.Context, order *models.Order, form models.WebOrderForm) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}
	if err := writer.WriteField("order", string(orderJSON)); err != nil {
		return fmt.Errorf("failed to write order field: %w", err)
	}

	fields := map[string]string{
		"websiteName": form.WebsiteName,
		"color":       form.Color,
		"theme":       form.Theme,
		"domain":      form.Domain,
		"note":        form.Note,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(name, value); err != nil {
			return fmt.Errorf("failed to write %s field: %w", name, err)
		}
	}

	if form.LogoPath != "" {
		if err := attachFile(writer, "logo", form.LogoPath); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders/weborder", &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.send(req, nil)
}

func attachFile(writer *multipart.Writer, field, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile(field, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to copy %s: %w", field, err)
	}
	return nil
}
