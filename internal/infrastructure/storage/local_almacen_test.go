package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastillo/comercio-api/pkg/config"
)

func TestGuardar(t *testing.T) {
	dir := t.TempDir()
	almacen, err := NewLocalAlmacen(config.StorageConfig{Dir: dir, BaseURL: "/comprobantes/"})
	require.NoError(t, err)

	url, err := almacen.Guardar("B001-00000042.pdf", []byte("%PDF-1.7"))
	require.NoError(t, err)
	assert.Equal(t, "/comprobantes/B001-00000042.pdf", url)

	contenido, err := os.ReadFile(filepath.Join(dir, "B001-00000042.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(contenido))
}

func TestGuardar_NombreConRuta(t *testing.T) {
	dir := t.TempDir()
	almacen, err := NewLocalAlmacen(config.StorageConfig{Dir: dir, BaseURL: "/comprobantes"})
	require.NoError(t, err)

	url, err := almacen.Guardar("../../etc/passwd", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "/comprobantes/passwd", url)
	_, err = os.Stat(filepath.Join(dir, "passwd"))
	assert.NoError(t, err)
}

func TestNewLocalAlmacen_SinDir(t *testing.T) {
	_, err := NewLocalAlmacen(config.StorageConfig{})
	assert.Error(t, err)
}
