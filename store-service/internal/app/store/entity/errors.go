package entity

import "errors"

// Ошибки домена магазина
// Сервисы оборачивают их через fmt.Errorf("...: %w"), handlers проверяют через errors.Is
var (
	ErrDuplicateKey      = errors.New("duplicate key")
	ErrNotFound          = errors.New("not found")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidDiscount   = errors.New("invalid discount")
)
