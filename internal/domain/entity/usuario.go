package entity

import "time"

// Métodos de registro de usuario.
const (
	MetodoRegistroLocal  = "local"
	MetodoRegistroGoogle = "google"
)

// Roles predefinidos (tabla roles; el nombre es único).
const (
	RolAdmin      = "admin"
	RolAlmacenero = "almacenero"
	RolCliente    = "cliente"
)

// Rol agrupa permisos de usuarios. La emisión de tokens y el login los maneja
// el servicio de autenticación externo; aquí solo se persiste la relación.
type Rol struct {
	ID          string
	Nombre      string // único
	Descripcion string
}

// Usuario representa una cuenta de la plataforma. La autenticación (login, OAuth)
// vive en el servicio externo; este core almacena la fila y el hash de contraseña.
type Usuario struct {
	ID              string
	RolID           string
	Nombre          string
	Apellido        string
	Email           string // único
	PasswordHash    string // bcrypt, nunca en claro después de persistir
	Direccion       string
	Telefono        string
	Documento       string // DNI o RUC
	MetodoRegistro  string // local, google
	GoogleID        string
	FotoPerfil      string
	EmailVerificado bool
	Activo          bool
	FechaRegistro   time.Time
	UltimoAcceso    *time.Time
}
