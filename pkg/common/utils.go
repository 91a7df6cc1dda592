package common

import (
	"golang.org/x/exp/constraints"
)

func Min[T constraints.Integer](l, r T) T {
	if l < r {
		return l
	}
	return r
}

func Max[T constraints.Integer](l, r T) T {
	if l > r {
		return l
	}
	return r
}

func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func let(ok bool, yes, no int) int {
	if ok {
		return yes
	}
	return no
}
