package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastillo/comercio-api/internal/application/auth"
	"github.com/dcastillo/comercio-api/internal/application/dto"
)

// AuthHandler maneja registro, login y rotación de tokens.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Registrar godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegistrarRequest  true  "Datos de la cuenta"
// @Success      201   {object}  dto.UsuarioResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" || in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, email y password son requeridos"})
	}
	if len(in.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "password debe tener al menos 8 caracteres"})
	}
	usuario, _, err := h.uc.Registrar(c.Context(), auth.RegistrarInput{
		Nombre:    in.Nombre,
		Apellido:  in.Apellido,
		Email:     in.Email,
		Password:  in.Password,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Documento: in.Documento,
	}, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UsuarioFromEntity(usuario))
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.SesionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	sesion, err := h.uc.Login(c.Context(), in.Email, in.Password, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SesionResponse{
		AccessToken:  sesion.AccessToken,
		RefreshToken: sesion.RefreshToken,
		Usuario:      dto.UsuarioFromEntity(sesion.Usuario),
	})
}

// Refresh godoc
// @Summary      Rotar refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.SesionResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil || in.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "refresh_token es requerido"})
	}
	sesion, err := h.uc.Refresh(c.Context(), in.RefreshToken, time.Now())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SesionResponse{
		AccessToken:  sesion.AccessToken,
		RefreshToken: sesion.RefreshToken,
		Usuario:      dto.UsuarioFromEntity(sesion.Usuario),
	})
}

// VerificarEmail godoc
// @Summary      Verificar email con token de un solo uso
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VerificarEmailRequest  true  "token"
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/verify-email [post]
func (h *AuthHandler) VerificarEmail(c *fiber.Ctx) error {
	var in dto.VerificarEmailRequest
	if err := c.BodyParser(&in); err != nil || in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "token es requerido"})
	}
	if err := h.uc.VerificarEmail(c.Context(), in.Token, time.Now()); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
