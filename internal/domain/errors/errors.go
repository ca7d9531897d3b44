package errors

import "errors"

var (
	ErrNotFound                  = errors.New("not found")
	ErrOrderNotFound             = errors.New("order not found")
	ErrClientNotFound            = errors.New("client not found")
	ErrProductNotFound           = errors.New("product not found")
	ErrProductInactive           = errors.New("product inactive")
	ErrPaymentNotFound           = errors.New("payment not found")
	ErrOrderItemNotFound         = errors.New("order item not found")
	ErrUserNotFound              = errors.New("user not found")
	ErrOrderAlreadyCancelled     = errors.New("order already cancelled")
	ErrCannotEditCancelled       = errors.New("cannot edit cancelled order")
	ErrCannotRestoreNonCompleted = errors.New("can only restore completed orders")
	ErrEmptyName                 = errors.New("name must not be empty")
	ErrInvalidQty                = errors.New("quantity must be positive")
	ErrInvalidAmount             = errors.New("amount must be positive")
	ErrInvalidDiscount           = errors.New("invalid discount")
	ErrEmptyOrder                = errors.New("order needs at least one item")
	ErrLockTimeout               = errors.New("could not acquire lock")
)
