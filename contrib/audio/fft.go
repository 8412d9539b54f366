// Copyright 2026 go-tensorir Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package audio

import "math"

// HanningWindow returns a window of the given size sampled from the
// period-point Hann curve: w[i] = 0.5 - 0.5*cos(2*pi*i / (period-1)).
// Whisper uses size = NumFFT with period = NumFFT+1, which yields the
// "periodic" Hann window.
func HanningWindow(size, period int) []float64 {
	window := make([]float64, size)
	for i := range window {
		window[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(period-1))
	}
	return window
}

// FFT computes the discrete Fourier transform of a real input. Power-of-two
// prefixes recurse radix-2; an odd length falls back to the direct DFT, so
// any length is accepted. The output has len(in) complex bins.
func FFT(in []float64) []complex128 {
	n := len(in)
	if n == 1 {
		return []complex128{complex(in[0], 0)}
	}
	if n%2 == 1 {
		return dft(in)
	}

	even := make([]float64, 0, n/2)
	odd := make([]float64, 0, n/2)
	for i, v := range in {
		if i%2 == 0 {
			even = append(even, v)
		} else {
			odd = append(odd, v)
		}
	}

	evenFFT := FFT(even)
	oddFFT := FFT(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		theta := 2 * math.Pi * float64(k) / float64(n)
		twiddle := complex(math.Cos(theta), -math.Sin(theta))
		out[k] = evenFFT[k] + twiddle*oddFFT[k]
		out[k+n/2] = evenFFT[k] - twiddle*oddFFT[k]
	}
	return out
}

// dft is the O(n^2) fallback for lengths the radix-2 recursion cannot
// split.
func dft(in []float64) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var re, im float64
		for i, v := range in {
			angle := 2 * math.Pi * float64(k) * float64(i) / float64(n)
			re += v * math.Cos(angle)
			im -= v * math.Sin(angle)
		}
		out[k] = complex(re, im)
	}
	return out
}
