package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

// Repos repositorios atados a la transacción de emisión. El correlativo se
// toma dentro de la transacción para que dos emisiones concurrentes sobre la
// misma serie no dupliquen número.
type Repos struct {
	Comprobantes repository.ComprobanteRepository
	Pedidos      repository.PedidoRepository
	Logs         repository.LogRepository
}

// TxRunner ejecuta la emisión dentro de una transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}

// LineaDocumento línea imprimible del comprobante.
type LineaDocumento struct {
	Descripcion    string
	Unidad         string // catálogo 03 (NIU, ZZ, ...)
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
}

// DocumentoElectronico datos completos del comprobante para generar el XML
// firmado y el PDF imprimible.
type DocumentoElectronico struct {
	RUCEmisor      string
	RazonSocial    string
	TipoDoc        string // catálogo 01
	SerieNumero    string
	FechaEmision   string // YYYY-MM-DD
	ClienteNombre  string
	ClienteTipoDoc string // catálogo 06
	ClienteNumDoc  string
	Lineas         []LineaDocumento
	Gravado        decimal.Decimal
	IGV            decimal.Decimal
	Total          decimal.Decimal
	CodigoHash     string
}

// GeneradorXML construye el XML UBL del comprobante y lo firma con el
// certificado del emisor.
type GeneradorXML interface {
	Generar(doc *DocumentoElectronico) ([]byte, error)
}

// GeneradorPDF genera la representación impresa del comprobante.
type GeneradorPDF interface {
	Generar(doc *DocumentoElectronico) ([]byte, error)
}

// Almacen guarda un artefacto generado y devuelve su URL pública.
type Almacen interface {
	Guardar(nombre string, contenido []byte) (string, error)
}
