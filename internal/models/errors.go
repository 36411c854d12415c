package models

import (
	"errors"
)

var (
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrAlreadyFavorite    = errors.New("models: offer already in favorites")
	ErrReferenceNotFound  = errors.New("models: referenced record not found")
	ErrOfferNotFound      = errors.New("models: offer not found")
	ErrInvalidLimit       = errors.New("models: limit must not be negative")
	ErrInvalidSortField   = errors.New("models: unsupported sort field")
	ErrInvalidFavoriteKey = errors.New("models: unsupported favorite key")
	ErrUnsupportedImage   = errors.New("models: unsupported image type")
	ErrStorageDisabled    = errors.New("models: object storage is not configured")
)
