package sunat

import (
	"crypto/tls"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/pkg/config"
)

var _ billing.GeneradorXML = (*GeneradorUBL)(nil)

// GeneradorUBL genera el XML UBL del comprobante y lo firma con el certificado
// del emisor. Sin certificado configurado emite el XML sin firma (modo simulado).
type GeneradorUBL struct {
	builder *XMLBuilderService
	signer  *DigitalSignatureService
	cert    tls.Certificate
	firmar  bool
}

// NewGeneradorUBL carga el certificado de la configuración y arma el generador.
func NewGeneradorUBL(cfg config.SUNATConfig) (*GeneradorUBL, error) {
	cert, err := LoadCertFromPEM(cfg.CertPath, cfg.CertKeyPath)
	if err != nil {
		return nil, err
	}
	return &GeneradorUBL{
		builder: NewXMLBuilderService(),
		signer:  NewDigitalSignatureService(),
		cert:    cert,
		firmar:  cfg.CertPath != "",
	}, nil
}

// Generar implementa billing.GeneradorXML.
func (g *GeneradorUBL) Generar(doc *billing.DocumentoElectronico) ([]byte, error) {
	xmlBytes, err := g.builder.Build(doc)
	if err != nil {
		return nil, err
	}
	if !g.firmar {
		return xmlBytes, nil
	}
	return g.signer.Sign(xmlBytes, g.cert)
}
