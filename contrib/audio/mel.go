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

// Mel scale constants, librosa-compatible (Slaney formulation): linear
// below 1 kHz at 200/3 Hz per mel, logarithmic above.
const (
	melLinearStep = 200.0 / 3.0
	melMinLogHz   = 1000.0
	melMaxMel     = 45.245640471924965 // mel(8000 Hz), the Nyquist of 16 kHz
)

var melLogStep = math.Log(6.4) / 27.0

// melToHz converts a Slaney mel value to Hz.
func melToHz(mel float64) float64 {
	minLogMel := melMinLogHz / melLinearStep
	if mel >= minLogMel {
		return melMinLogHz * math.Exp(melLogStep*(mel-minLogMel))
	}
	return melLinearStep * mel
}

// MelFilterBank builds nMels triangular filters over the nFFT/2+1
// non-negative frequency bins of a sampleRate spectrum. Filters are
// Slaney-normalized: each is scaled by 2 / (bandwidth in Hz), so filter
// areas are equal rather than peaks.
func MelFilterBank(sampleRate, nFFT, nMels int) [][]float64 {
	nBins := nFFT/2 + 1
	binHz := float64(sampleRate) / float64(nFFT)

	// Break frequencies: nMels+2 points equally spaced on the mel scale.
	melStep := melMaxMel / float64(nMels+1)
	freqs := make([]float64, nMels+2)
	for i := range freqs {
		freqs[i] = melToHz(float64(i) * melStep)
	}

	filters := make([][]float64, nMels)
	for m := range filters {
		lower, center, upper := freqs[m], freqs[m+1], freqs[m+2]
		enorm := 2.0 / (upper - lower)
		row := make([]float64, nBins)
		for j := 0; j < nBins; j++ {
			f := float64(j) * binHz
			rising := (f - lower) / (center - lower)
			falling := (upper - f) / (upper - center)
			row[j] = enorm * math.Max(0, math.Min(rising, falling))
		}
		filters[m] = row
	}
	return filters
}
