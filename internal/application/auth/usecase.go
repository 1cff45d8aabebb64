package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
	"github.com/dcastillo/comercio-api/pkg/jwt"
)

const (
	refreshTokenTTL       = 30 * 24 * time.Hour
	emailVerificationTTL  = 48 * time.Hour
	accessTokenExpMinutes = 60
)

// AuthUseCase registro de cuentas y almacenamiento de tokens. El login OAuth y
// la emisión principal de tokens viven en el servicio de autenticación externo;
// este core persiste las filas y puede emitir tokens locales con el mismo secreto.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	rolRepo     repository.RolRepository
	tokenRepo   repository.TokenRepository
	jwtSecret   string
	jwtIssuer   string
}

func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, rolRepo repository.RolRepository, tokenRepo repository.TokenRepository, jwtSecret, jwtIssuer string) *AuthUseCase {
	return &AuthUseCase{
		usuarioRepo: usuarioRepo,
		rolRepo:     rolRepo,
		tokenRepo:   tokenRepo,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
	}
}

// RegistrarInput datos de registro local.
type RegistrarInput struct {
	Nombre    string
	Apellido  string
	Email     string
	Password  string
	Telefono  string
	Direccion string
	Documento string
}

// Registrar crea la cuenta con rol cliente, hash bcrypt de la contraseña y un
// token de verificación de email de un solo uso.
func (uc *AuthUseCase) Registrar(ctx context.Context, in RegistrarInput, now time.Time) (*entity.Usuario, *entity.EmailVerificationToken, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 || in.Nombre == "" {
		return nil, nil, domain.ErrEntradaInvalida
	}
	existente, err := uc.usuarioRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, err
	}
	if existente != nil {
		return nil, nil, domain.ErrEmailYaRegistrado
	}
	rol, err := uc.rolRepo.GetByNombre(entity.RolCliente)
	if err != nil {
		return nil, nil, err
	}
	if rol == nil {
		return nil, nil, domain.ErrNoEncontrado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	usuario := &entity.Usuario{
		ID:             uuid.New().String(),
		RolID:          rol.ID,
		Nombre:         in.Nombre,
		Apellido:       in.Apellido,
		Email:          email,
		PasswordHash:   string(hash),
		Direccion:      in.Direccion,
		Telefono:       in.Telefono,
		Documento:      in.Documento,
		MetodoRegistro: entity.MetodoRegistroLocal,
		Activo:         true,
		FechaRegistro:  now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, nil, err
	}

	verificacion := &entity.EmailVerificationToken{
		ID:        uuid.New().String(),
		Token:     nuevoTokenOpaco(),
		UsuarioID: usuario.ID,
		Created:   now,
		Expires:   now.Add(emailVerificationTTL),
	}
	if err := uc.tokenRepo.CreateEmailVerification(verificacion); err != nil {
		return nil, nil, err
	}
	return usuario, verificacion, nil
}

// Sesion tokens emitidos en un login o refresh.
type Sesion struct {
	AccessToken  string
	RefreshToken string
	Usuario      *entity.Usuario
}

// Login verifica credenciales locales y emite un par access/refresh.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string, now time.Time) (*Sesion, error) {
	usuario, err := uc.usuarioRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if usuario == nil || !usuario.Activo {
		return nil, domain.ErrNoAutorizado
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrNoAutorizado
	}

	rol, err := uc.rolNombre(usuario.RolID)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtSecret, usuario.ID, rol, uc.jwtIssuer, accessTokenExpMinutes)
	if err != nil {
		return nil, err
	}
	refresh := &entity.RefreshToken{
		ID:        uuid.New().String(),
		Token:     nuevoTokenOpaco(),
		UsuarioID: usuario.ID,
		Created:   now,
		Expires:   now.Add(refreshTokenTTL),
	}
	if err := uc.tokenRepo.CreateRefresh(refresh); err != nil {
		return nil, err
	}

	usuario.UltimoAcceso = &now
	if err := uc.usuarioRepo.Update(usuario); err != nil {
		return nil, err
	}
	return &Sesion{AccessToken: access, RefreshToken: refresh.Token, Usuario: usuario}, nil
}

// Refresh rota el refresh token: revoca el usado y emite un par nuevo.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string, now time.Time) (*Sesion, error) {
	fila, err := uc.tokenRepo.GetRefreshByToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if fila == nil {
		return nil, domain.ErrNoAutorizado
	}
	if fila.IsExpired(now) {
		return nil, domain.ErrTokenExpirado
	}
	usuario, err := uc.usuarioRepo.GetByID(fila.UsuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil || !usuario.Activo {
		return nil, domain.ErrNoAutorizado
	}
	if err := uc.tokenRepo.RevokeRefresh(refreshToken); err != nil {
		return nil, err
	}

	rol, err := uc.rolNombre(usuario.RolID)
	if err != nil {
		return nil, err
	}
	access, err := jwt.Generate(uc.jwtSecret, usuario.ID, rol, uc.jwtIssuer, accessTokenExpMinutes)
	if err != nil {
		return nil, err
	}
	nuevo := &entity.RefreshToken{
		ID:        uuid.New().String(),
		Token:     nuevoTokenOpaco(),
		UsuarioID: usuario.ID,
		Created:   now,
		Expires:   now.Add(refreshTokenTTL),
	}
	if err := uc.tokenRepo.CreateRefresh(nuevo); err != nil {
		return nil, err
	}
	return &Sesion{AccessToken: access, RefreshToken: nuevo.Token, Usuario: usuario}, nil
}

// VerificarEmail consume el token de verificación y marca el email del usuario.
func (uc *AuthUseCase) VerificarEmail(ctx context.Context, token string, now time.Time) error {
	fila, err := uc.tokenRepo.GetEmailVerificationByToken(token)
	if err != nil {
		return err
	}
	if fila == nil {
		return domain.ErrNoEncontrado
	}
	if fila.IsExpired(now) {
		return domain.ErrTokenExpirado
	}
	usuario, err := uc.usuarioRepo.GetByID(fila.UsuarioID)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrNoEncontrado
	}
	if err := uc.tokenRepo.MarkEmailVerificationUsed(token); err != nil {
		return err
	}
	usuario.EmailVerificado = true
	return uc.usuarioRepo.Update(usuario)
}

func (uc *AuthUseCase) rolNombre(rolID string) (string, error) {
	roles, err := uc.rolRepo.List()
	if err != nil {
		return "", err
	}
	for _, r := range roles {
		if r.ID == rolID {
			return r.Nombre, nil
		}
	}
	return entity.RolCliente, nil
}

func nuevoTokenOpaco() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String() + uuid.New().String()
	}
	return hex.EncodeToString(b)
}
