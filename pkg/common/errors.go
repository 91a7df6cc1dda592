package common

import "errors"

var (
	ErrInvalidFEN   = errors.New("invalid fen")
	ErrInvalidMove  = errors.New("invalid move")
	ErrEmptyHistory = errors.New("revert on empty move history")
)
