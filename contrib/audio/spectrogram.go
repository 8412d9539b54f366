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

// Whisper preprocessing constants.
const (
	SampleRate = 16000
	NumFFT     = 400
	NumMels    = 80
	HopLength  = 160
	MaxSamples = 480000 // 30 seconds
)

// NumFrames is the number of spectrogram frames ProcessAudio emits.
const NumFrames = MaxSamples / HopLength

// ProcessAudio computes the Whisper log-mel spectrogram of a raw 16 kHz
// mono waveform. Input shorter than 30 seconds is zero-padded, longer
// input is truncated. The result has NumFrames rows of NumMels values,
// clamped to 8 dB below the global peak and scaled into model input range
// by (x+4)/4.
func ProcessAudio(raw []float32) [][]float32 {
	samples := make([]float64, MaxSamples)
	for i := 0; i < MaxSamples && i < len(raw); i++ {
		samples[i] = float64(raw[i])
	}

	window := HanningWindow(NumFFT, NumFFT+1)
	filters := MelFilterBank(SampleRate, NumFFT, NumMels)
	padded := reflectPad(samples, NumFFT/2)

	logSpecs := make([][]float64, NumFrames)
	globalMax := math.Inf(-1)
	for f := range logSpecs {
		row := melFrame(padded[f*HopLength:f*HopLength+NumFFT], window, filters)
		for _, v := range row {
			globalMax = math.Max(globalMax, v)
		}
		logSpecs[f] = row
	}

	// Clamp to 8 dB below the loudest bin, then map into model range.
	floor := globalMax - 8.0
	out := make([][]float32, NumFrames)
	for f, row := range logSpecs {
		scaled := make([]float32, NumMels)
		for m, v := range row {
			scaled[m] = float32((math.Max(floor, v) + 4.0) / 4.0)
		}
		out[f] = scaled
	}
	return out
}

// melFrame computes one spectrogram row: window, power spectrum, fold the
// symmetric half, mel projection, log10 with a 1e-10 silence floor.
func melFrame(frame, window []float64, filters [][]float64) []float64 {
	windowed := make([]float64, NumFFT)
	for i := range windowed {
		windowed[i] = frame[i] * window[i]
	}

	spectrum := FFT(windowed)
	power := make([]float64, NumFFT)
	for i, c := range spectrum {
		power[i] = real(c)*real(c) + imag(c)*imag(c)
	}
	// Real input makes the spectrum conjugate-symmetric; averaging the
	// mirrored bins removes the residual numerical asymmetry.
	for i := 1; i <= NumFFT/2; i++ {
		power[i] = 0.5 * (power[i] + power[NumFFT-i])
	}

	nBins := NumFFT/2 + 1
	row := make([]float64, len(filters))
	for m, filter := range filters {
		acc := 0.0
		for k := 0; k < nBins; k++ {
			acc += power[k] * filter[k]
		}
		row[m] = math.Log10(math.Max(acc, 1e-10))
	}
	return row
}

// reflectPad pads both ends of samples with pad elements mirrored around
// the boundary sample (which is itself not repeated).
func reflectPad(samples []float64, pad int) []float64 {
	out := make([]float64, len(samples)+2*pad)
	for i := 0; i < pad; i++ {
		out[pad-1-i] = samples[i+1]
	}
	copy(out[pad:], samples)
	for i := 0; i < pad; i++ {
		out[pad+len(samples)+i] = samples[len(samples)-2-i]
	}
	return out
}
