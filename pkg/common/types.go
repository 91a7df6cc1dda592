package common

import "time"

type LimitsType struct {
	Infinite       bool
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MoveTime       int
	MovesToGo      int
	Depth          int
}

// SearchParams describes a search request: a start position, the moves played
// from it and the budget.
type SearchParams struct {
	StartFen string
	Moves    []Move
	Limits   LimitsType
	Progress func(si SearchInfo)
}

type SearchInfo struct {
	Score    UciScore
	Depth    int
	Nodes    int64
	Time     time.Duration
	MainLine []Move
	FromBook bool
}

// UciScore is relative to the side to move. Mate is in moves, negative when being mated.
type UciScore struct {
	Centipawns int
	Mate       int
}
