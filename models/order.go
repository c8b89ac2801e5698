package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	// Order statuses (typical storefront flow)
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the shop
	OrderStatusCompleted OrderStatus = "completed" // Website delivered to the customer
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before delivery
)

type OrderItem struct {
	ProductID string  `json:"productID"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Order is the POST /api/orders payload built at checkout.
type Order struct {
	OrderID      string      `json:"orderID"`
	CustomerName string      `json:"customerName"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone"`
	Address      string      `json:"address"`
	Total        float64     `json:"total"`
	Status       OrderStatus `json:"status"`
	Date         time.Time   `json:"date"`
	Items        []OrderItem `json:"items"`
	Note         string      `json:"note,omitempty"`
}

// WebOrderForm is the checkout form for a website order. Logo is uploaded
// separately as multipart alongside the order fields.
type WebOrderForm struct {
	FullName    string
	Email       string
	Phone       string
	WebsiteName string
	Color       string
	Theme       string
	LogoPath    string // local file path, optional
	Domain      string
	Note        string
}

var ErrEmptyCart = errors.New("cart is empty or invalid")

// requiredFields mirrors the checkout validation order so the first
// missing field is the one reported.
func (f WebOrderForm) validate() error {
	required := []struct{ name, value string }{
		{"fullName", f.FullName},
		{"email", f.Email},
		{"phone", f.Phone},
		{"websiteName", f.WebsiteName},
		{"color", f.Color},
		{"theme", f.Theme},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("please fill %s", field.name)
		}
	}
	return nil
}

// BuildOrder turns the current cart plus the checkout form into an order
// payload. Lines without a product id or with a non-positive quantity or
// negative price are dropped; an order is never built from an empty cart.
func BuildOrder(lines []CartLine, form WebOrderForm) (*Order, error) {
	valid := make([]OrderItem, 0, len(lines))
	var total float64
	for _, line := range lines {
		if line.ProductID == "" || line.Quantity <= 0 || line.Price < 0 {
			continue
		}
		valid = append(valid, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Image:     line.Image,
			Quantity:  line.Quantity,
		})
		total += line.LineTotal()
	}
	if len(valid) == 0 {
		return nil, ErrEmptyCart
	}

	if err := form.validate(); err != nil {
		return nil, err
	}

	address := strings.TrimSpace(form.Domain)
	if address == "" {
		address = "No address provided"
	}

	now := time.Now()
	return &Order{
		OrderID:      fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CustomerName: strings.TrimSpace(form.FullName),
		Email:        strings.TrimSpace(form.Email),
		Phone:        strings.TrimSpace(form.Phone),
		Address:      address,
		Total:        total,
		Status:       OrderStatusPending,
		Date:         now,
		Items:        valid,
		Note:         strings.TrimSpace(form.Note),
	}, nil
}
