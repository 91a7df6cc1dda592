package uci

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

var errOutOfRange = errors.New("argument out of range")

type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}

type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errOutOfRange
	}
	*opt.Value = v
	return nil
}

// DurationOption is exposed as a spin value in milliseconds.
type DurationOption struct {
	Name  string
	Max   time.Duration
	Value *time.Duration
}

func (opt *DurationOption) UciName() string {
	return opt.Name
}

func (opt *DurationOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", opt.Value.Milliseconds(), 0, opt.Max.Milliseconds())
}

func (opt *DurationOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	var d = time.Duration(v) * time.Millisecond
	if d < 0 || d > opt.Max {
		return errOutOfRange
	}
	*opt.Value = d
	return nil
}
