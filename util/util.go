package util

import "golang.org/x/exp/constraints"

type Number interface {
	constraints.Integer | constraints.Float
}

func Abs[A Number](v A) A {
	if v < 0 {
		return -v
	}
	return v
}

func Clamp[A constraints.Ordered](v, lo, hi A) A {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Min[A constraints.Ordered](nums ...A) A {
	var res A
	for i, v := range nums {
		if i == 0 || v < res {
			res = v
		}
	}
	return res
}

func Max[A constraints.Ordered](nums ...A) A {
	var res A
	for i, v := range nums {
		if i == 0 || v > res {
			res = v
		}
	}
	return res
}

func Mean[A Number](nums []A) float64 {
	if len(nums) == 0 {
		return 0
	}
	var total float64
	for _, v := range nums {
		total += float64(v)
	}
	return total / float64(len(nums))
}
