// Package sunat: utilidades para comprobantes electrónicos (Perú): código hash del
// resumen, validación de RUC y catálogos SUNAT de uso frecuente.
package sunat

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ResumenParams contiene los datos del resumen del comprobante en el orden estricto
// de la cadena: RUC|TIPO|SERIE-NUMERO|IGV|TOTAL|FECHA|TIPO_DOC|NUM_DOC.
// Se construye desde Comprobante + Pedido + Usuario en la capa de aplicación.
type ResumenParams struct {
	RUCEmisor    string          // RUC del emisor, solo dígitos
	TipoDoc      string          // "01" factura, "03" boleta (catálogo 01)
	SerieNumero  string          // Serie-correlativo, ej. F001-00000123
	IGV          decimal.Decimal // Impuesto total
	Total        decimal.Decimal // Importe total del comprobante
	FechaEmision string          // YYYY-MM-DD
	TipoDocAdq   string          // Tipo de documento del adquiriente (catálogo 06)
	NumDocAdq    string          // Número de documento del adquiriente
}

// HashCalculatorService calcula el código hash del resumen del comprobante.
type HashCalculatorService struct{}

// NewHashCalculatorService crea el servicio.
func NewHashCalculatorService() *HashCalculatorService {
	return &HashCalculatorService{}
}

// Calculate genera el código hash a partir de parámetros ya preparados.
// Cadena: campos separados por "|" en el orden del resumen; hash SHA-256 en hexadecimal (minúsculas).
func (s *HashCalculatorService) Calculate(p *ResumenParams) (string, error) {
	if p == nil {
		return "", fmt.Errorf("sunat: ResumenParams es obligatorio")
	}
	ruc := onlyDigits(p.RUCEmisor)
	if ruc == "" {
		return "", fmt.Errorf("sunat: RUCEmisor es obligatorio")
	}
	serie := strings.ReplaceAll(strings.TrimSpace(p.SerieNumero), " ", "")
	if serie == "" {
		return "", fmt.Errorf("sunat: SerieNumero es obligatorio")
	}
	if p.FechaEmision == "" {
		return "", fmt.Errorf("sunat: FechaEmision es obligatoria")
	}
	tipo := p.TipoDoc
	if tipo == "" {
		tipo = TipoDocBoleta
	}

	cadena := strings.Join([]string{
		ruc,
		tipo,
		serie,
		formatDecimal(p.IGV),
		formatDecimal(p.Total),
		p.FechaEmision,
		p.TipoDocAdq,
		onlyDigits(p.NumDocAdq),
	}, "|")

	hash := sha256.Sum256([]byte(cadena))
	return hex.EncodeToString(hash[:]), nil
}

// formatDecimal formatea el valor para la cadena del resumen: punto decimal, 2 decimales.
func formatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// onlyDigits deja solo dígitos 0-9.
func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
