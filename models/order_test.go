package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() WebOrderForm {
	return WebOrderForm{
		FullName:    "Jane Doe",
		Email:       "jane@example.com",
		Phone:       "+94771234567",
		WebsiteName: "Jane's Bakery",
		Color:       "Green",
		Theme:       "light",
	}
}

func TestBuildOrder(t *testing.T) {
	lines := []CartLine{
		{ProductID: "P1", Name: "Starter Site", Price: 10, Quantity: 1},
		{ProductID: "P2", Name: "Shop Site", Price: 5, Quantity: 3},
	}

	order, err := BuildOrder(lines, validForm())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.InDelta(t, 25.0, order.Total, 0.0001)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "No address provided", order.Address)
}

func TestBuildOrderFiltersInvalidLines(t *testing.T) {
	lines := []CartLine{
		{ProductID: "", Name: "no id", Price: 10, Quantity: 1},
		{ProductID: "P1", Price: 10, Quantity: 0},
		{ProductID: "P2", Price: -1, Quantity: 1},
		{ProductID: "P3", Name: "keeper", Price: 7, Quantity: 2},
	}

	order, err := BuildOrder(lines, validForm())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "P3", order.Items[0].ProductID)
	assert.InDelta(t, 14.0, order.Total, 0.0001)
}

func TestBuildOrderEmptyCart(t *testing.T) {
	_, err := BuildOrder(nil, validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = BuildOrder([]CartLine{{ProductID: "P1", Quantity: 0, Price: 1}}, validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WebOrderForm)
		want   string
	}{
		{"missing full name", func(f *WebOrderForm) { f.FullName = " " }, "please fill fullName"},
		{"missing email", func(f *WebOrderForm) { f.Email = "" }, "please fill email"},
		{"missing phone", func(f *WebOrderForm) { f.Phone = "" }, "please fill phone"},
		{"missing website name", func(f *WebOrderForm) { f.WebsiteName = "" }, "please fill websiteName"},
		{"missing color", func(f *WebOrderForm) { f.Color = "" }, "please fill color"},
		{"missing theme", func(f *WebOrderForm) { f.Theme = "" }, "please fill theme"},
	}

	lines := []CartLine{{ProductID: "P1", Price: 10, Quantity: 1}}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			form := validForm()
			testCase.mutate(&form)
			_, err := BuildOrder(lines, form)
			require.Error(t, err)
			assert.Equal(t, testCase.want, err.Error())
		})
	}
}

func TestBuildOrderUsesDomainAsAddress(t *testing.T) {
	form := validForm()
	form.Domain = "janes-bakery.lk"

	order, err := BuildOrder([]CartLine{{ProductID: "P1", Price: 10, Quantity: 1}}, form)
	require.NoError(t, err)
	assert.Equal(t, "janes-bakery.lk", order.Address)
}
