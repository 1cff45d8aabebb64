package sunat

import "fmt"

// =============================================================================
// Catálogo 01 - Tipo de comprobante de pago electrónico
// =============================================================================

const (
	TipoDocFactura = "01" // Factura
	TipoDocBoleta  = "03" // Boleta de venta
)

// ValidTipoDocCodes códigos de comprobante soportados por la plataforma.
var ValidTipoDocCodes = map[string]bool{
	TipoDocFactura: true,
	TipoDocBoleta:  true,
}

// =============================================================================
// Catálogo 06 - Tipo de documento de identidad del adquiriente
// =============================================================================

const (
	DocTipoSinDocumento = "0" // No domiciliado / sin documento (boletas menores)
	DocTipoDNI          = "1" // DNI
	DocTipoRUC          = "6" // RUC - requiere dígito verificador
)

// =============================================================================
// Catálogo 03 - Unidades de medida (códigos UNECE de uso frecuente)
// =============================================================================

const (
	UnidadUnidad        = "NIU" // Unidad (bienes)
	UnidadServicio      = "ZZ"  // Servicio
	UnidadKilogramo     = "KGM" // Kilogramo
	UnidadGramo         = "GRM" // Gramo
	UnidadLitro         = "LTR" // Litro
	UnidadMetro         = "MTR" // Metro
	UnidadMetroCuadrado = "MTK" // Metro cuadrado
	UnidadDocena        = "DZN" // Docena
)

// ValidUnidadCodes códigos de unidad de medida válidos (uso común en comprobantes).
var ValidUnidadCodes = map[string]bool{
	UnidadUnidad: true, UnidadServicio: true, UnidadKilogramo: true, UnidadGramo: true,
	UnidadLitro: true, UnidadMetro: true, UnidadMetroCuadrado: true, UnidadDocena: true,
}

// IGVRate tasa de IGV vigente (18%). Los montos se calculan con decimal en la capa de aplicación.
const IGVRate = "0.18"

// FormatSerieNumero compone serie-correlativo con relleno a 8 dígitos (ej. F001-00000042).
func FormatSerieNumero(serie string, correlativo int64) string {
	return fmt.Sprintf("%s-%08d", serie, correlativo)
}

// TipoDocForSerie infiere el tipo de comprobante por la letra inicial de la serie:
// F* = factura, B* = boleta.
func TipoDocForSerie(serie string) string {
	if len(serie) > 0 && (serie[0] == 'F' || serie[0] == 'f') {
		return TipoDocFactura
	}
	return TipoDocBoleta
}
