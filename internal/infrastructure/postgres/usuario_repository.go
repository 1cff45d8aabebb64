package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
)

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo implementación sobre PostgreSQL.
type RolRepo struct {
	q Querier
}

func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

func (r *RolRepo) Create(rol *entity.Rol) error {
	if rol.ID == "" {
		rol.ID = uuid.New().String()
	}
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO roles (id, nombre, descripcion) VALUES ($1, $2, $3)`,
		rol.ID, rol.Nombre, rol.Descripcion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("create rol: %w", err)
	}
	return nil
}

func (r *RolRepo) GetByNombre(nombre string) (*entity.Rol, error) {
	var rol entity.Rol
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nombre, descripcion FROM roles WHERE nombre = $1`, nombre,
	).Scan(&rol.ID, &rol.Nombre, &rol.Descripcion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &rol, nil
}

func (r *RolRepo) List() ([]*entity.Rol, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nombre, descripcion FROM roles ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.ID, &rol.Nombre, &rol.Descripcion); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, &rol)
	}
	return list, rows.Err()
}

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id, rol_id, nombre, apellido, email, password_hash, direccion, telefono,
		documento, metodo_registro, google_id, foto_perfil, email_verificado, activo,
		fecha_registro, ultimo_acceso`

// Create persiste un usuario. Devuelve ErrEmailYaRegistrado si el email ya existe.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	if usuario.ID == "" {
		usuario.ID = uuid.New().String()
	}
	query := `
		INSERT INTO usuarios (` + usuarioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.RolID, usuario.Nombre, usuario.Apellido, usuario.Email,
		usuario.PasswordHash, usuario.Direccion, usuario.Telefono, usuario.Documento,
		usuario.MetodoRegistro, usuario.GoogleID, usuario.FotoPerfil,
		usuario.EmailVerificado, usuario.Activo, usuario.FechaRegistro, usuario.UltimoAcceso,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("create usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.get(`WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.get(`WHERE email = $1`, email)
}

func (r *UsuarioRepo) get(where string, arg any) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios ` + where
	u, err := scanUsuario(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// Update actualiza los campos mutables de un usuario.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	query := `
		UPDATE usuarios SET rol_id = $2, nombre = $3, apellido = $4, email = $5,
			password_hash = $6, direccion = $7, telefono = $8, documento = $9,
			google_id = $10, foto_perfil = $11, email_verificado = $12, activo = $13,
			ultimo_acceso = $14
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.RolID, usuario.Nombre, usuario.Apellido, usuario.Email,
		usuario.PasswordHash, usuario.Direccion, usuario.Telefono, usuario.Documento,
		usuario.GoogleID, usuario.FotoPerfil, usuario.EmailVerificado, usuario.Activo,
		usuario.UltimoAcceso,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailYaRegistrado
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNoEncontrado
	}
	return nil
}

// List devuelve usuarios paginados por fecha de registro.
func (r *UsuarioRepo) List(limit, offset int) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios ORDER BY fecha_registro DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.RolID, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash,
		&u.Direccion, &u.Telefono, &u.Documento, &u.MetodoRegistro, &u.GoogleID,
		&u.FotoPerfil, &u.EmailVerificado, &u.Activo, &u.FechaRegistro, &u.UltimoAcceso,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ repository.TokenRepository = (*TokenRepo)(nil)

// TokenRepo almacena refresh tokens y tokens de verificación de email.
type TokenRepo struct {
	q Querier
}

func NewTokenRepository(q Querier) *TokenRepo {
	return &TokenRepo{q: q}
}

func (r *TokenRepo) CreateRefresh(token *entity.RefreshToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	query := `
		INSERT INTO refresh_tokens (id, token, usuario_id, created, expires, revoked)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		token.ID, token.Token, token.UsuarioID, token.Created, token.Expires, token.Revoked,
	)
	if err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepo) GetRefreshByToken(token string) (*entity.RefreshToken, error) {
	query := `SELECT id, token, usuario_id, created, expires, revoked FROM refresh_tokens WHERE token = $1`
	var t entity.RefreshToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&t.ID, &t.Token, &t.UsuarioID, &t.Created, &t.Expires, &t.Revoked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

func (r *TokenRepo) RevokeRefresh(token string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE refresh_tokens SET revoked = TRUE WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepo) CreateEmailVerification(token *entity.EmailVerificationToken) error {
	if token.ID == "" {
		token.ID = uuid.New().String()
	}
	query := `
		INSERT INTO email_verification_tokens (id, token, usuario_id, created, expires, used, used_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		token.ID, token.Token, token.UsuarioID, token.Created, token.Expires, token.Used, token.UsedAt,
	)
	if err != nil {
		return fmt.Errorf("create email verification token: %w", err)
	}
	return nil
}

func (r *TokenRepo) GetEmailVerificationByToken(token string) (*entity.EmailVerificationToken, error) {
	query := `SELECT id, token, usuario_id, created, expires, used, used_at FROM email_verification_tokens WHERE token = $1`
	var t entity.EmailVerificationToken
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&t.ID, &t.Token, &t.UsuarioID, &t.Created, &t.Expires, &t.Used, &t.UsedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get email verification token: %w", err)
	}
	return &t, nil
}

func (r *TokenRepo) MarkEmailVerificationUsed(token string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE email_verification_tokens SET used = TRUE, used_at = NOW() WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("mark email verification used: %w", err)
	}
	return nil
}
