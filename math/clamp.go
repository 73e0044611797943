// SPDX-License-Identifier: GPL-2.0-or-later

package math

type Number interface {
	~int | ~int32 | ~int64 | ~uint32 | ~float32 | ~float64
}

// Clamp limits val to [min,max]
func Clamp[K Number](min, val, max K) K {
	if min > val {
		return min
	} else if max < val {
		return max
	}
	return val
}

// ClampMagnitude limits val to [-limit,limit]. limit must not be negative.
func ClampMagnitude[K Number](val, limit K) K {
	return Clamp(-limit, val, limit)
}
