package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func GetKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := make([]A, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// GetSortedKeys is GetKeys with a deterministic order
func GetSortedKeys[A constraints.Ordered, B any](m map[A]B) []A {
	keys := GetKeys(m)
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}

func Min[A constraints.Integer](num1 A, num2 A) A {
	if num1 > num2 {
		return num2
	}
	return num1
}

func Max[A constraints.Integer](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}

// Spread returns max - min of nums, 0 when there are fewer than 2
func Spread[A constraints.Integer](nums []A) A {
	if len(nums) < 2 {
		return 0
	}
	lo, hi := nums[0], nums[0]
	for _, v := range nums[1:] {
		lo = Min(lo, v)
		hi = Max(hi, v)
	}
	return hi - lo
}

func Sum[A constraints.Integer](nums []A) uint64 {
	var total uint64
	for _, v := range nums {
		total += uint64(v)
	}
	return total
}

// Rotate returns a copy of s shifted left by k positions
func Rotate[A any](s []A, k int) []A {
	res := make([]A, 0, len(s))
	if len(s) == 0 {
		return res
	}
	k = k % len(s)
	res = append(res, s[k:]...)
	res = append(res, s[:k]...)
	return res
}
