package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/rookie-chess/rookie/pkg/common"
)

func TestCalcLimits(t *testing.T) {
	var options = NewOptions()
	var tests = []struct {
		main, inc time.Duration
		moves     int
		soft      time.Duration
		hard      time.Duration
	}{
		{60*time.Second + 30*time.Millisecond, 0, 0, 1 * time.Second, 2 * time.Second},
		{60*time.Second + 30*time.Millisecond, 2 * time.Second, 0, 1500 * time.Millisecond, 3 * time.Second},
		{10*time.Second + 30*time.Millisecond, 0, 10, 500 * time.Millisecond, 1 * time.Second},
		{20 * time.Millisecond, 0, 0, options.MinThinkTime, options.MinThinkTime},
	}
	for _, test := range tests {
		var soft, hard = calcLimits(test.main, test.inc, test.moves, &options)
		assert.Equal(t, test.soft, soft, test.main.String())
		assert.Equal(t, test.hard, hard, test.main.String())
		assert.LessOrEqual(t, soft, hard)
	}
}

func TestTimeManagerDeadlines(t *testing.T) {
	var options = NewOptions()
	var start = time.Now()

	var ctx, tm = newSimpleTimeManager(context.Background(), start, LimitsType{MoveTime: 500}, &options, true)
	var deadline, ok = ctx.Deadline()
	assert.True(t, ok)
	assert.Equal(t, start.Add(500*time.Millisecond), deadline)
	tm.Close()
	assert.Error(t, ctx.Err())

	ctx, tm = newSimpleTimeManager(context.Background(), start,
		LimitsType{WhiteTime: 1000, BlackTime: 60030}, &options, false)
	deadline, ok = ctx.Deadline()
	assert.True(t, ok)
	assert.Equal(t, start.Add(2*time.Second), deadline, "black clock is used")
	tm.Close()

	ctx, tm = newSimpleTimeManager(context.Background(), start, LimitsType{Infinite: true}, &options, true)
	_, ok = ctx.Deadline()
	assert.False(t, ok)
	tm.Close()

	options.MoveTime = 300 * time.Millisecond
	ctx, tm = newSimpleTimeManager(context.Background(), start, LimitsType{}, &options, true)
	deadline, ok = ctx.Deadline()
	assert.True(t, ok)
	assert.Equal(t, start.Add(300*time.Millisecond), deadline)
	tm.Close()
}

func TestTimeManagerDepthLimits(t *testing.T) {
	var options = NewOptions()
	options.FixedDepth = 4
	var _, tm = newSimpleTimeManager(context.Background(), time.Now(), LimitsType{}, &options, true)
	defer tm.Close()
	assert.True(t, tm.OnIterationComplete(mainLine{depth: 3}))
	assert.False(t, tm.OnIterationComplete(mainLine{depth: 4}))
	assert.False(t, tm.OnIterationComplete(mainLine{depth: 2, score: MateIn(3, true)}))

	_, tm = newSimpleTimeManager(context.Background(), time.Now(), LimitsType{Depth: 2}, &options, true)
	defer tm.Close()
	assert.False(t, tm.OnIterationComplete(mainLine{depth: 2}))

	_, tm = newSimpleTimeManager(context.Background(), time.Now(), LimitsType{Infinite: true}, &options, true)
	defer tm.Close()
	assert.True(t, tm.OnIterationComplete(mainLine{depth: 20, score: MateIn(3, true)}))
	assert.False(t, tm.OnIterationComplete(mainLine{depth: options.MaxDepth}))
}
