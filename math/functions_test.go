// SPDX-License-Identifier: GPL-2.0-or-later

package math

import (
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		a, b, eps float32
		want      bool
	}{
		{1, 1, 0, true},
		{1, 1.5, 0.5, true},
		{-2, -2.25, 0.125, false},
		{64, 63.99999, 1.0 / 65536, true},
	}
	for _, tc := range tests {
		if got := NearlyEqual(tc.a, tc.b, tc.eps); got != tc.want {
			t.Errorf("NearlyEqual(%v,%v,%v) = %v want %v", tc.a, tc.b, tc.eps, got, tc.want)
		}
	}
}
