// Package pdf implementa la representación impresa del comprobante electrónico
// (boleta o factura) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUC  │  Serie-Número + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ADQUIRIENTE: Nombre + Documento                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Op. gravada / IGV / IMPORTE TOTAL                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código hash + QR + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/pkg/sunat"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var localePE = message.NewPrinter(language.MustParse("es-PE"))

var _ billing.GeneradorPDF = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.GeneradorPDF usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generar genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoPDFGenerator) Generar(doc *billing.DocumentoElectronico) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento es obligatorio")
	}
	cfg := marotocfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(tituloDocumento(doc.TipoDoc)+" "+doc.SerieNumero, true).
		WithAuthor(doc.RazonSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(adquirienteRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(doc.Lineas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(doc) {
		m.AddRows(r)
	}

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return generated.GetBytes(), nil
}

// headerRow: razón social + RUC (izq) y serie-número + fecha (der).
func headerRow(doc *billing.DocumentoElectronico) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(doc.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+doc.RUCEmisor, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(tituloDocumento(doc.TipoDoc)), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.SerieNumero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+doc.FechaEmision, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// adquirienteRow: datos del comprador.
func adquirienteRow(doc *billing.DocumentoElectronico) core.Row {
	documento := "—"
	if doc.ClienteNumDoc != "" {
		documento = etiquetaDocumento(doc.ClienteTipoDoc) + ": " + doc.ClienteNumDoc
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.ClienteNombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(documento, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea del comprobante.
func tableDetailRows(lineas []billing.LineaDocumento) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMonto(l.PrecioUnitario),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMonto(l.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(doc *billing.DocumentoElectronico) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Op. gravada:"),
			label("IGV (18%):"),
			grandLabel("IMPORTE TOTAL:"),
		),
		col.New(3).Add(
			value(formatMonto(doc.Gravado)),
			value(formatMonto(doc.IGV)),
			grandValue(formatMonto(doc.Total)),
		),
		col.New(3),
	)
}

// footerRows: código hash + QR + leyenda.
func footerRows(doc *billing.DocumentoElectronico) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("REPRESENTACIÓN IMPRESA DEL COMPROBANTE ELECTRÓNICO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}

	if doc.CodigoHash != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Código hash: "+doc.CodigoHash, props.Text{
				Size: 6.5, Color: colorGray, Top: 1,
			}),
		)))
		// QR con la cadena del resumen para verificación.
		qr := strings.Join([]string{
			doc.RUCEmisor, doc.TipoDoc, doc.SerieNumero,
			doc.IGV.StringFixed(2), doc.Total.StringFixed(2),
			doc.FechaEmision, doc.ClienteTipoDoc, doc.ClienteNumDoc, doc.CodigoHash,
		}, "|")
		rows = append(rows, row.New(40).Add(
			col.New(4).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Consulte el comprobante con el código QR\no el código hash del resumen.", props.Text{
					Size: 8, Top: 4, Left: 3, Color: colorGray,
				}),
			),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Emitido mediante sistema de emisión electrónica. "+
				"Conserve este documento como sustento de su compra.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

func tituloDocumento(tipoDoc string) string {
	if tipoDoc == sunat.TipoDocFactura {
		return "Factura electrónica"
	}
	return "Boleta de venta electrónica"
}

func etiquetaDocumento(tipoDoc string) string {
	switch tipoDoc {
	case sunat.DocTipoRUC:
		return "RUC"
	case sunat.DocTipoDNI:
		return "DNI"
	default:
		return "Doc"
	}
}

// formatMonto formatea un importe en soles con separadores es-PE: S/ 1,234.56.
func formatMonto(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "S/ " + localePE.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
