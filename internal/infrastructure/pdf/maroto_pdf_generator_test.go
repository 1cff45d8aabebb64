package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/pkg/sunat"
)

func documentoDePrueba() *billing.DocumentoElectronico {
	return &billing.DocumentoElectronico{
		RUCEmisor:      "20100070970",
		RazonSocial:    "Comercio SAC",
		TipoDoc:        sunat.TipoDocBoleta,
		SerieNumero:    "B001-00000042",
		FechaEmision:   "2025-08-01",
		ClienteNombre:  "Ana Quispe",
		ClienteTipoDoc: sunat.DocTipoDNI,
		ClienteNumDoc:  "45678901",
		Lineas: []billing.LineaDocumento{
			{
				Descripcion:    "SKU-001",
				Unidad:         sunat.UnidadUnidad,
				Cantidad:       2,
				PrecioUnitario: decimal.RequireFromString("59.00"),
				Total:          decimal.RequireFromString("118.00"),
			},
		},
		Gravado:    decimal.RequireFromString("100.00"),
		IGV:        decimal.RequireFromString("18.00"),
		Total:      decimal.RequireFromString("118.00"),
		CodigoHash: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
	}
}

func TestGenerar_ProducePDF(t *testing.T) {
	pdfBytes, err := NewMarotoPDFGenerator().Generar(documentoDePrueba())
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}

func TestGenerar_SinHashOmiteQR(t *testing.T) {
	doc := documentoDePrueba()
	doc.CodigoHash = ""
	pdfBytes, err := NewMarotoPDFGenerator().Generar(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, pdfBytes)
}

func TestGenerar_DocumentoNil(t *testing.T) {
	_, err := NewMarotoPDFGenerator().Generar(nil)
	assert.Error(t, err)
}

func TestFormatMonto(t *testing.T) {
	assert.Equal(t, "S/ 1,234.56", formatMonto(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "S/ 0.50", formatMonto(decimal.RequireFromString("0.5")))
}
