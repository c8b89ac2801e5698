package admin

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/snapsite-dev/storefront-client/models"
)

func TestExportProductsXLSX(t *testing.T) {
	products := []models.Product{
		{ProductID: "P1", Name: "Starter Site", Price: 49.99, LabelledPrice: 79.99, Stock: 10, IsAvailable: true, Images: []string{"a.png", "b.png"}},
		{ProductID: "P2", Name: "Shop Site", Price: 129.99, Stock: 3},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportProductsXLSX(products, &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 3, "header plus one row per product")

	assert.Equal(t, "ProductID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "P1", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Starter Site", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "a.png,b.png", sheet.Rows[1].Cells[8].String())
	assert.Equal(t, "P2", sheet.Rows[2].Cells[0].String())
}

func TestExportEmptyCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportProductsXLSX(nil, &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets[0].Rows, 1, "header only")
}
