package engine

import (
	"context"
	"time"

	. "github.com/rookie-chess/rookie/pkg/common"
)

type simpleTimeManager struct {
	start     time.Time
	limits    LimitsType
	maxDepth  int
	softLimit time.Duration
	hardLimit time.Duration
	cancel    context.CancelFunc
}

func newSimpleTimeManager(ctx context.Context, start time.Time,
	limits LimitsType, options *Options, whiteMove bool) (context.Context, *simpleTimeManager) {

	var tm = &simpleTimeManager{
		start:    start,
		limits:   limits,
		maxDepth: Min(options.MaxDepth, maxHeight),
	}
	if tm.maxDepth <= 0 {
		tm.maxDepth = maxHeight
	}

	if limits.Depth > 0 {
		tm.maxDepth = Min(tm.maxDepth, limits.Depth)
	} else if options.FixedDepth > 0 && !limits.Infinite {
		tm.maxDepth = Min(tm.maxDepth, options.FixedDepth)
	}

	switch {
	case limits.Infinite:
	case limits.MoveTime > 0:
		tm.hardLimit = time.Duration(limits.MoveTime) * time.Millisecond
	case limits.WhiteTime > 0 || limits.BlackTime > 0:
		var main, inc time.Duration
		if whiteMove {
			main = time.Duration(limits.WhiteTime) * time.Millisecond
			inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
		} else {
			main = time.Duration(limits.BlackTime) * time.Millisecond
			inc = time.Duration(limits.BlackIncrement) * time.Millisecond
		}
		tm.softLimit, tm.hardLimit = calcLimits(main, inc, limits.MovesToGo, options)
	case options.MoveTime > 0 && limits.Depth == 0:
		tm.hardLimit = options.MoveTime
	}

	var cancel context.CancelFunc
	if tm.hardLimit != 0 {
		ctx, cancel = context.WithDeadline(ctx, start.Add(tm.hardLimit))
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	tm.cancel = cancel
	return ctx, tm
}

// OnIterationComplete reports whether another depth should be started.
func (tm *simpleTimeManager) OnIterationComplete(line mainLine) bool {
	if line.depth >= tm.maxDepth {
		return false
	}
	if tm.limits.Infinite {
		return true
	}
	if line.score.IsMate() {
		return false
	}
	if tm.softLimit != 0 &&
		time.Since(tm.start) >= tm.softLimit {
		return false
	}
	return true
}

func (tm *simpleTimeManager) Close() {
	tm.cancel()
}

func calcLimits(main, inc time.Duration, moves int, options *Options) (soft, hard time.Duration) {
	var minThink = options.MinThinkTime
	if minThink <= 0 {
		minThink = time.Millisecond
	}

	main -= options.MoveOverhead
	if main < minThink {
		main = minThink
	}

	if moves <= 0 {
		moves = options.MovesToGo
	}
	if moves <= 0 {
		moves = 30
	}

	var ideal = main/time.Duration(moves) + inc/2
	hard = limitDuration(ideal, minThink, main)
	soft = limitDuration(hard/2, minThink, main)
	return
}

func limitDuration(v, min, max time.Duration) time.Duration {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
