package sunat

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/pkg/config"
	"github.com/dcastillo/comercio-api/pkg/sunat"
)

func configSinCert() config.SUNATConfig {
	return config.SUNATConfig{RUCEmisor: "20100070970", RazonSocial: "Comercio SAC"}
}

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
		Lineas: []billing.LineaDocumento{{
			Descripcion:    "SKU-001",
			Unidad:         sunat.UnidadUnidad,
			Cantidad:       2,
			PrecioUnitario: decimal.RequireFromString("59.00"),
			Total:          decimal.RequireFromString("118.00"),
		}},
		Gravado:    decimal.RequireFromString("100.00"),
		IGV:        decimal.RequireFromString("18.00"),
		Total:      decimal.RequireFromString("118.00"),
		CodigoHash: "abc123",
	}
}

func TestBuild_EstructuraUBL(t *testing.T) {
	xmlBytes, err := NewXMLBuilderService().Build(documentoDePrueba())
	require.NoError(t, err)
	out := string(xmlBytes)

	assert.Contains(t, out, `<cbc:ID>B001-00000042</cbc:ID>`)
	assert.Contains(t, out, `<cbc:InvoiceTypeCode>03</cbc:InvoiceTypeCode>`)
	assert.Contains(t, out, `<cbc:DocumentCurrencyCode>PEN</cbc:DocumentCurrencyCode>`)
	assert.Contains(t, out, `schemeID="6">20100070970`)
	assert.Contains(t, out, `schemeID="1">45678901`)
	assert.Contains(t, out, `currencyID="PEN">118.00`)
	assert.Contains(t, out, `<cbc:Note>abc123</cbc:Note>`)
	// El ExtensionContent vacío queda reservado para la firma.
	assert.Contains(t, out, "ExtensionContent")
}

func TestBuild_SinLineas(t *testing.T) {
	doc := documentoDePrueba()
	doc.Lineas = nil
	_, err := NewXMLBuilderService().Build(doc)
	assert.Error(t, err)
}

func certAutofirmado(t *testing.T) tls.Certificate {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "Comercio SAC", Organization: []string{"Comercio SAC"}},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, tpl, tpl, &key.PublicKey, key)
	require.NoError(t, err)
	return tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
}

func TestSign_InyectaFirma(t *testing.T) {
	xmlBytes, err := NewXMLBuilderService().Build(documentoDePrueba())
	require.NoError(t, err)

	firmado, err := NewDigitalSignatureService().Sign(xmlBytes, certAutofirmado(t))
	require.NoError(t, err)

	out := string(firmado)
	assert.Contains(t, out, "ds:Signature")
	assert.Contains(t, out, "ds:SignatureValue")
	assert.Contains(t, out, "ds:X509Certificate")
	assert.Contains(t, out, `URI="#comprobante"`)
}

func TestGenerar_SinCertificadoNoFirma(t *testing.T) {
	gen, err := NewGeneradorUBL(configSinCert())
	require.NoError(t, err)

	xmlBytes, err := gen.Generar(documentoDePrueba())
	require.NoError(t, err)
	assert.NotContains(t, string(xmlBytes), "ds:SignatureValue")
}
