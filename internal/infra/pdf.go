package infra

// pdf.go — PDF rendering for ventas y remisiones using go-pdf/fpdf.
// Pure presentation: consumes already-computed totals and detail rows, never
// recalculates money. Output goes to storagePath/{factura|remision}_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"ayher/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// GenerarFacturaPDF renders an A5 invoice for a completed Venta.
// Returns the absolute path of the generated file.
func GenerarFacturaPDF(venta *model.Venta, empresa, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("factura_%s.pdf", venta.Numero))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, empresa, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Factura de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW/2, 5, "Factura "+venta.Numero, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 5, venta.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	if venta.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+venta.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	col1 := contentW * 0.46 // artículo
	col2 := contentW * 0.12 // cantidad
	col3 := contentW * 0.21 // precio C$
	col4 := contentW * 0.21 // subtotal C$

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Artículo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Precio C$", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 5, "Subtotal C$", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, d := range venta.Detalles {
		nombre := ""
		if d.Articulo != nil {
			nombre = d.Articulo.Nombre
		}
		if len(nombre) > 30 {
			nombre = nombre[:29] + "…"
		}
		subtotal := d.PrecioCordoba.Mul(decimal.NewFromInt(int64(d.Cantidad)))
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, d.PrecioCordoba.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 5, subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(8, pdf.GetY(), pageW-8, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1+col2, 6, "TOTAL C$:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 6, venta.TotalCordoba.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(col1+col2, 5, fmt.Sprintf("Total US$ (T/C %s):", venta.TasaCambio.StringFixed(4)), "", 0, "L", false, 0, "")
	pdf.CellFormat(col3+col4, 5, venta.TotalDolar.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerarRemisionPDF renders an A5 delivery note.
func GenerarRemisionPDF(rem *model.Remision, empresa, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("remision_%s.pdf", rem.Numero))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, empresa, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Remisión de Entrega", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW/2, 5, rem.Numero, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 5, rem.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	if rem.Cliente != nil {
		pdf.CellFormat(contentW, 5, "Cliente: "+rem.Cliente.Nombre, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	col1 := contentW * 0.58
	col2 := contentW * 0.14
	col3 := contentW * 0.28

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 5, "Artículo", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Precio C$", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, d := range rem.Detalles {
		nombre := ""
		if d.Articulo != nil {
			nombre = d.Articulo.Nombre
		}
		if len(nombre) > 38 {
			nombre = nombre[:37] + "…"
		}
		pdf.CellFormat(col1, 5, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, d.PrecioCordoba.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW/2, 5, "Recibí conforme: ______________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, "Entregó: ______________________", "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
