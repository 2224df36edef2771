package model

import "errors"

var (
	ErrScreenNotFound  = errors.New("screen not found")
	ErrUnknownStrategy = errors.New("unknown packing strategy")
	ErrUnknownFormat   = errors.New("unknown file format")
	ErrOutOfRange      = errors.New("value out of range")
)
