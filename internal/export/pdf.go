package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/halchemy/bookpath/internal/fileutil"
	"github.com/halchemy/bookpath/internal/recommend"
)

// GeneratePDF renders the path as a one-document PDF report.
func GeneratePDF(p recommend.Path, rationale string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252 only; translate the text we feed them
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(0, 10, "Halchemy Library - Learning Path", "", 1, "C", false, 0, "")
		pdf.Ln(5)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	topic := fmt.Sprintf("Topic: %s (%s)", titleCase(p.Query.Category), titleCase(string(p.Query.Level)))
	pdf.CellFormat(0, 10, tr(topic), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	if rationale != "" {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, "Why this path?", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, tr(rationale), "", "L", false)
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "The Books", "", 1, "L", false, 0, "")

	if p.Empty() {
		pdf.SetFont("Arial", "", 11)
		pdf.MultiCell(0, 6, "No books in the catalog match this request.", "", "L", false)
	}

	for i, book := range p.Books {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("%d. %s", i+1, book.Title)), "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Author: %s", book.Author)), "", 1, "L", false, 0, "")

		if book.ShortDescription != "" {
			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 6, tr(book.ShortDescription), "", "L", false)
		}

		if book.StoreURL != "" {
			pdf.SetTextColor(0, 0, 255)
			pdf.CellFormat(0, 6, "Buy Link", "", 1, "L", false, 0, book.StoreURL)
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.Ln(3)
	}

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, "Expert Hint", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, tr(p.Hint), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders the path report and writes it to filePath. It returns
// whether a file was actually written.
func WritePDF(p recommend.Path, rationale, filePath string, overwrite bool) (bool, error) {
	data, err := GeneratePDF(p, rationale)
	if err != nil {
		return false, err
	}

	written, err := fileutil.WriteFileWithOverwrite(filePath, data, 0644, overwrite)
	if err != nil {
		return false, fmt.Errorf("failed to write PDF: %w", err)
	}
	return written, nil
}
