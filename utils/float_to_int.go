// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 quantizes a normalized sample to signed 16-bit PCM.
//
// Input is clamped to [-1, 1]. Negative values scale by 32768 and
// non-negative values by 32767, so both full-scale ends map exactly onto
// the int16 range. The scaled value is rounded half to even. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := float64(x)

	switch {
	case math.IsNaN(v):
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}

	if v < 0 {
		return int16(math.RoundToEven(v * 32768.0))
	}

	return int16(math.RoundToEven(v * 32767.0))
}

// Float32ToInt16Slice quantizes src into dst and returns the number of
// samples written, which is min(len(dst), len(src)).
func Float32ToInt16Slice(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}
