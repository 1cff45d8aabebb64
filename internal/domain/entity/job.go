package entity

import "time"

// Tipos de importación.
const (
	ImportProductos = "productos"
	ImportLotes     = "lotes"
	ImportCompras   = "compras"
	ImportClientes  = "clientes"
)

// Tipos de exportación.
const (
	ExportVentas    = "ventas"
	ExportStock     = "stock"
	ExportProductos = "productos"
)

// Estados de job (import/export). El procesamiento de archivos corre en un
// servicio externo; aquí solo se registra el estado del encargo.
const (
	JobPendiente  = "pendiente"
	JobProcesando = "procesando"
	JobCompletado = "completado"
	JobFallido    = "fallido"
)

// ImportJob encargo de importación de datos desde un archivo.
type ImportJob struct {
	ID          string
	UsuarioID   string
	Tipo        string
	ArchivoURL  string
	Status      string
	Errores     string
	FechaInicio time.Time
	FechaFin    *time.Time
}

// ExportJob encargo de exportación de datos hacia un archivo.
type ExportJob struct {
	ID              string
	UsuarioID       string
	Tipo            string
	Parametros      string // filtros serializados (JSON)
	Status          string
	URLArchivo      string
	FechaCreacion   time.Time
	FechaCompletado *time.Time
}

// LogAccion entrada del registro de auditoría de acciones de usuario.
type LogAccion struct {
	ID        string
	UsuarioID *string
	Accion    string
	Detalle   string
	Fecha     time.Time
}
