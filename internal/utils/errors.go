package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrEmailTaken         = errors.New("EMAIL_TAKEN")
	ErrProductNotFound    = errors.New("PRODUCT_NOT_FOUND")
	ErrWishlistNotFound   = errors.New("WISHLIST_NOT_FOUND")
	ErrInvalidTargetPrice = errors.New("INVALID_TARGET_PRICE")
	ErrForbidden          = errors.New("FORBIDDEN")
)
