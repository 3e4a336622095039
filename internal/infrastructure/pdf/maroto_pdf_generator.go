// Package pdf genera la representación gráfica de una factura del libro.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa + código │ N° Factura + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMPRESA: descripción                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Fecha de emisión | Estado | Fecha de pago | Monto │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL A PAGAR                                              │
//	│  FOOTER: QR con la referencia de la factura                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/biztime-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateFormat = "2006-01-02"

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa usecase.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	ctx context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
) ([]byte, error) {
	if invoice == nil || company == nil {
		return nil, fmt.Errorf("pdf: factura y empresa son obligatorias")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Invoice %d", invoice.ID), true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRow(company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRow(invoice))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + código de la empresa (izq) y N° factura + fecha (der).
func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Code: "+company.Code, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("#%d", invoice.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+invoice.AddDate.Format(dateFormat), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// companyRow: descripción de la empresa propietaria.
func companyRow(company *entity.Company) core.Row {
	desc := "—"
	if company.Description != nil && strings.TrimSpace(*company.Description) != "" {
		desc = *company.Description
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("BILLED COMPANY", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(desc, props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Issued", 3, align.Left),
		h("Status", 3, align.Center),
		h("Paid on", 3, align.Center),
		h("Amount", 3, align.Right),
	)
}

func tableDetailRow(invoice *entity.Invoice) core.Row {
	status := "UNPAID"
	if invoice.Paid {
		status = "PAID"
	}
	paidOn := "—"
	if invoice.PaidDate != nil {
		paidOn = invoice.PaidDate.Format(dateFormat)
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(invoice.AddDate.Format(dateFormat),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(3).Add(text.New(status,
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(paidOn,
			props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("$"+formatMoney(invoice.Amt),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

// totalsRow: total alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("TOTAL DUE:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("$"+formatMoney(amountDue(invoice)), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: QR con la referencia de la factura + leyenda.
func footerRow(invoice *entity.Invoice) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(reference(invoice), props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Reference: "+reference(invoice), props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Please include the reference with your payment.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// amountDue es cero si la factura ya está pagada.
func amountDue(invoice *entity.Invoice) decimal.Decimal {
	if invoice.Paid {
		return decimal.Zero
	}
	return invoice.Amt
}

// reference identifica la factura en el QR: <comp_code>-<id>.
func reference(invoice *entity.Invoice) string {
	return fmt.Sprintf("%s-%d", invoice.CompCode, invoice.ID)
}

// formatMoney formatea con dos decimales y separador de miles.
// Ej: 25000 → "25,000.00", 1000000.5 → "1,000,000.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
