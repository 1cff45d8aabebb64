package repository

import "github.com/dcastillo/comercio-api/internal/domain/entity"

// RolRepository puerto de persistencia para roles.
type RolRepository interface {
	Create(rol *entity.Rol) error
	GetByNombre(nombre string) (*entity.Rol, error)
	List() ([]*entity.Rol, error)
}

// UsuarioRepository puerto de persistencia para usuarios. El login y la emisión
// de tokens los maneja el servicio de autenticación externo; este puerto solo
// cubre el almacenamiento de filas.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	Update(usuario *entity.Usuario) error
	List(limit, offset int) ([]*entity.Usuario, error)
}

// TokenRepository almacena refresh tokens y tokens de verificación de email.
type TokenRepository interface {
	CreateRefresh(token *entity.RefreshToken) error
	GetRefreshByToken(token string) (*entity.RefreshToken, error)
	RevokeRefresh(token string) error

	CreateEmailVerification(token *entity.EmailVerificationToken) error
	GetEmailVerificationByToken(token string) (*entity.EmailVerificationToken, error)
	MarkEmailVerificationUsed(token string) error
}
