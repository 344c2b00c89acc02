package model

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductInactive  = errors.New("product is not active")
	ErrCategoryInUse    = errors.New("category still has products")
)
