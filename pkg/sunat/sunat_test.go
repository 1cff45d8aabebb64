package sunat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRUCCheckDigit(t *testing.T) {
	// RUC reales de prueba: 20100070970 (empresa), 10467987632 (persona natural)
	dv, err := ComputeRUCCheckDigit("2010007097")
	require.NoError(t, err)
	assert.Equal(t, byte('0'), dv)

	require.NoError(t, ValidateRUC("20100070970"))
	require.NoError(t, ValidateRUC("20.100.070-970"))
}

func TestValidateRUC_DigitoIncorrecto(t *testing.T) {
	err := ValidateRUC("20100070971")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dígito verificador")
}

func TestValidateRUC_LongitudInvalida(t *testing.T) {
	require.Error(t, ValidateRUC("12345"))
	require.Error(t, ValidateRUC(""))
}

func TestHashCalculator_Determinista(t *testing.T) {
	svc := NewHashCalculatorService()
	p := &ResumenParams{
		RUCEmisor:    "20100070970",
		TipoDoc:      TipoDocFactura,
		SerieNumero:  "F001-00000042",
		IGV:          decimal.RequireFromString("18.00"),
		Total:        decimal.RequireFromString("118.00"),
		FechaEmision: "2025-03-15",
		TipoDocAdq:   DocTipoDNI,
		NumDocAdq:    "46798763",
	}
	h1, err := svc.Calculate(p)
	require.NoError(t, err)
	h2, err := svc.Calculate(p)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "el hash debe ser determinista para los mismos parámetros")
	assert.Len(t, h1, 64, "SHA-256 en hexadecimal")
}

func TestHashCalculator_CamposObligatorios(t *testing.T) {
	svc := NewHashCalculatorService()
	_, err := svc.Calculate(nil)
	require.Error(t, err)

	_, err = svc.Calculate(&ResumenParams{SerieNumero: "B001-1", FechaEmision: "2025-01-01"})
	require.Error(t, err, "sin RUC emisor debe fallar")
}

func TestFormatSerieNumero(t *testing.T) {
	assert.Equal(t, "F001-00000042", FormatSerieNumero("F001", 42))
	assert.Equal(t, "B001-00000001", FormatSerieNumero("B001", 1))
}

func TestTipoDocForSerie(t *testing.T) {
	assert.Equal(t, TipoDocFactura, TipoDocForSerie("F001"))
	assert.Equal(t, TipoDocBoleta, TipoDocForSerie("B001"))
	assert.Equal(t, TipoDocBoleta, TipoDocForSerie(""))
}
