package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrItemNotFound        = errors.New("ítem no encontrado")
	ErrLotNotFound         = errors.New("lote no encontrado")
	ErrPurchaseNotFound    = errors.New("compra no encontrada")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrDuplicateItemName   = errors.New("ya existe un ítem con ese nombre")
	ErrDuplicateLotNumber  = errors.New("ya existe un lote con ese número")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintentar la operación")
	ErrInsufficientLot     = errors.New("cantidad insuficiente en el lote")
	ErrInsufficientStock   = errors.New("cantidad agregada insuficiente entre los lotes disponibles")
)

// InsufficientLotQuantityError indica que un lote explícito no alcanza a cubrir
// la cantidad solicitada. Lleva el disponible para que el caller pueda decidir.
// errors.Is(err, ErrInsufficientLot) sigue funcionando vía Unwrap.
type InsufficientLotQuantityError struct {
	LotID     string
	LotNumber string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientLotQuantityError) Error() string {
	return fmt.Sprintf("lote %s: solicitado %s, disponible %s", e.LotNumber, e.Requested, e.Available)
}

func (e *InsufficientLotQuantityError) Unwrap() error { return ErrInsufficientLot }

// InsufficientAggregateQuantityError indica que la suma de todos los lotes
// disponibles no cubre el retiro solicitado. Shortfall = Requested - Available.
type InsufficientAggregateQuantityError struct {
	ItemID    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientAggregateQuantityError) Error() string {
	return fmt.Sprintf("ítem %s: solicitado %s, disponible %s (faltante %s)",
		e.ItemID, e.Requested, e.Available, e.Shortfall())
}

func (e *InsufficientAggregateQuantityError) Unwrap() error { return ErrInsufficientStock }

// Shortfall devuelve cuánto faltó para cubrir el retiro.
func (e *InsufficientAggregateQuantityError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}
