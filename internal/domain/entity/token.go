package entity

import "time"

// RefreshToken fila de refresh token emitido por el servicio de autenticación externo.
type RefreshToken struct {
	ID        string
	Token     string // único
	UsuarioID string
	Created   time.Time
	Expires   time.Time
	Revoked   bool
}

// IsExpired indica si el token ya no es utilizable (vencido o revocado).
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return t.Expires.Before(now) || t.Revoked
}

// EmailVerificationToken token de un solo uso para verificar el email de un usuario.
type EmailVerificationToken struct {
	ID        string
	Token     string // único
	UsuarioID string
	Created   time.Time
	Expires   time.Time
	Used      bool
	UsedAt    *time.Time
}

// IsExpired indica si el token ya no es utilizable (vencido o consumido).
func (t *EmailVerificationToken) IsExpired(now time.Time) bool {
	return t.Expires.Before(now) || t.Used
}
