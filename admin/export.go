package admin

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/snapsite-dev/storefront-client/models"
	"github.com/tealeg/xlsx"
)

// ExportProductsXLSX writes the product catalog as an Excel sheet, one
// product per row.
func ExportProductsXLSX(products []models.Product, w io.Writer) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ProductID", "Name", "Description", "Price", "LabelledPrice",
		"Stock", "Available", "Category", "Images",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ProductID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.LabelledPrice)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.IsAvailable)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(strings.Join(p.Images, ","))
	}

	return file.Write(w)
}

// SaveProductsXLSX exports the catalog to a file on disk.
func SaveProductsXLSX(products []models.Product, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	return ExportProductsXLSX(products, out)
}
