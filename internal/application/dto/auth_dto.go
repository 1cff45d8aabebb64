package dto

import (
	"time"

	"github.com/dcastillo/comercio-api/internal/domain/entity"
)

// RegistrarRequest entrada para registrar una cuenta local.
type RegistrarRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=100"`
	Apellido  string `json:"apellido" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Documento string `json:"documento"`
}

// LoginRequest entrada para login local.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest entrada para rotar el refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// VerificarEmailRequest entrada para consumir el token de verificación.
type VerificarEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

// UsuarioResponse salida de un usuario (sin hash de contraseña).
type UsuarioResponse struct {
	ID              string     `json:"id"`
	Nombre          string     `json:"nombre"`
	Apellido        string     `json:"apellido"`
	Email           string     `json:"email"`
	Telefono        string     `json:"telefono,omitempty"`
	Direccion       string     `json:"direccion,omitempty"`
	Documento       string     `json:"documento,omitempty"`
	EmailVerificado bool       `json:"email_verificado"`
	Activo          bool       `json:"activo"`
	FechaRegistro   time.Time  `json:"fecha_registro"`
	UltimoAcceso    *time.Time `json:"ultimo_acceso,omitempty"`
}

// UsuarioFromEntity mapea la entidad a su respuesta pública.
func UsuarioFromEntity(u *entity.Usuario) UsuarioResponse {
	return UsuarioResponse{
		ID:              u.ID,
		Nombre:          u.Nombre,
		Apellido:        u.Apellido,
		Email:           u.Email,
		Telefono:        u.Telefono,
		Direccion:       u.Direccion,
		Documento:       u.Documento,
		EmailVerificado: u.EmailVerificado,
		Activo:          u.Activo,
		FechaRegistro:   u.FechaRegistro,
		UltimoAcceso:    u.UltimoAcceso,
	}
}

// SesionResponse par de tokens emitidos en login o refresh.
type SesionResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Usuario      UsuarioResponse `json:"usuario"`
}
