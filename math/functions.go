// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"github.com/chewxy/math32"
)

// NearlyEqual reports whether a and b are within eps of each other
func NearlyEqual(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
