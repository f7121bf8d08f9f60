package repository

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrInsufficientStock = errors.New("insufficient stock remaining")
	ErrConflict          = errors.New("concurrent modification")
)
