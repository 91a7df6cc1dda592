package engine

import (
	"time"
)

type Options struct {
	RandomSeed   int
	MaxDepth     int
	MoveTime     time.Duration
	FixedDepth   int
	MovesToGo    int
	MinThinkTime time.Duration
	MoveOverhead time.Duration
	OwnBook      bool
}

func NewOptions() Options {
	return Options{
		RandomSeed:   1,
		MaxDepth:     64,
		MovesToGo:    30,
		MinThinkTime: 50 * time.Millisecond,
		MoveOverhead: 30 * time.Millisecond,
		OwnBook:      true,
	}
}
