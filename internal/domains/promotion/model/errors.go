package model

import "errors"

var (
	ErrPromotionNotFound    = errors.New("promotion not found")
	ErrInvalidType          = errors.New("type must be PERCENTAGE or FIXED_AMOUNT")
	ErrInvalidTargetType    = errors.New("target_type must be PRODUCT, CATEGORY or CART")
	ErrInvalidValue         = errors.New("value must be greater than 0")
	ErrPercentageOutOfRange = errors.New("percentage value must be between 0 and 100")
	ErrTargetIDRequired     = errors.New("target_id is required for PRODUCT and CATEGORY promotions")
	ErrInvalidWindow        = errors.New("ends_at must be after starts_at")
)
