// Package storage guarda los artefactos generados (XML firmado y PDF de los
// comprobantes) en un directorio local y los expone bajo una URL base.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/pkg/config"
)

var _ billing.Almacen = (*LocalAlmacen)(nil)

// LocalAlmacen implementa billing.Almacen sobre el sistema de archivos.
type LocalAlmacen struct {
	dir     string
	baseURL string
}

// NewLocalAlmacen crea el directorio de destino si no existe.
func NewLocalAlmacen(cfg config.StorageConfig) (*LocalAlmacen, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("storage: directorio no configurado")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio %s: %w", cfg.Dir, err)
	}
	return &LocalAlmacen{dir: cfg.Dir, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}, nil
}

// Guardar escribe el archivo y devuelve su URL pública. El nombre se reduce a
// su base para que un nombre malicioso no escape del directorio.
func (a *LocalAlmacen) Guardar(nombre string, contenido []byte) (string, error) {
	if nombre == "" {
		return "", fmt.Errorf("storage: nombre vacío")
	}
	nombre = filepath.Base(nombre)
	ruta := filepath.Join(a.dir, nombre)
	if err := os.WriteFile(ruta, contenido, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribir %s: %w", nombre, err)
	}
	return a.baseURL + "/" + nombre, nil
}

// Dir devuelve el directorio local, para montar como estático en el servidor HTTP.
func (a *LocalAlmacen) Dir() string { return a.dir }
