package sunat

import (
	"crypto/tls"
	"fmt"
)

// LoadCertFromPEM carga el certificado y la llave privada del emisor desde
// archivos PEM. Si certPath está vacío retorna cert vacío y err nil (emisión
// sin firma, modo simulado).
func LoadCertFromPEM(certPath, keyPath string) (tls.Certificate, error) {
	if certPath == "" {
		return tls.Certificate{}, nil
	}
	if keyPath == "" {
		// Un solo archivo puede contener cert+key en PEM
		return tls.LoadX509KeyPair(certPath, certPath)
	}
	cert, err := tls.LoadX509KeyPair(certPath, keyPath)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("cargar certificado SUNAT: %w", err)
	}
	return cert, nil
}
