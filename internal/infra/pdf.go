package infra

// pdf.go — low-stock report generation using go-pdf/fpdf.
// Renders an A4 table with one row per inventario entry at or below its
// minimum: book, branch, current stock, threshold. The file lands in
// storagePath/stock_bajo_{timestamp}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"libreria/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReporteStockBajo writes the low-stock report PDF and returns its path.
func GenerateReporteStockBajo(rows []model.Inventario, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	now := time.Now()
	filePath := filepath.Join(storagePath, fmt.Sprintf("stock_bajo_%s.pdf", now.Format("20060102_150405")))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Reporte de Stock Bajo", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, now.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.40 // libro
	col2 := contentW * 0.30 // punto de venta
	col3 := contentW * 0.15 // stock
	col4 := contentW * 0.15 // minimo

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 6, "Libro", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Punto de Venta", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Stock", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col4, 6, "Mínimo", "B", 1, "C", false, 0, "")

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	for _, inv := range rows {
		libro, pv := "", ""
		if inv.Libro != nil {
			libro = inv.Libro.Nombre
		}
		if inv.PuntoVenta != nil {
			pv = inv.PuntoVenta.Nombre
		}
		if len(libro) > 45 {
			libro = libro[:44] + "…"
		}
		pdf.CellFormat(col1, 6, libro, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, pv, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%d", inv.Stock), "", 0, "C", false, 0, "")
		pdf.CellFormat(col4, 6, fmt.Sprintf("%d", inv.StockMinimo), "", 1, "C", false, 0, "")
	}

	if len(rows) == 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "Sin alertas: todo el inventario está por encima del mínimo.", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
