package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrEntradaInvalida   = errors.New("entrada inválida")
	ErrDuplicado         = errors.New("recurso duplicado")
	ErrNoAutorizado      = errors.New("no autorizado")
	ErrProhibido         = errors.New("acceso denegado")
	ErrConflicto         = errors.New("conflicto con el estado actual")
	ErrStockInsuficiente = errors.New("stock insuficiente")
	ErrCuponInvalido     = errors.New("cupón inválido o no aplicable")
	ErrPedidoNoEditable  = errors.New("el pedido está en un estado terminal")
	ErrEmailYaRegistrado = errors.New("el email ya está registrado")
	ErrTokenExpirado     = errors.New("token expirado o revocado")
)
