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

import (
	"math"
	"math/rand"
	"testing"
)

func TestHanningWindow(t *testing.T) {
	window := HanningWindow(NumFFT, NumFFT+1)

	if len(window) != NumFFT {
		t.Fatalf("window length = %d, want %d", len(window), NumFFT)
	}
	if window[0] != 0 {
		t.Errorf("window[0] = %g, want 0", window[0])
	}
	if math.Abs(window[NumFFT/2]-1) > 1e-12 {
		t.Errorf("window peak = %g, want 1", window[NumFFT/2])
	}
	// Periodic Hann: w[i] == w[N-i] for the interior.
	for i := 1; i < NumFFT/2; i++ {
		if math.Abs(window[i]-window[NumFFT-i]) > 1e-12 {
			t.Fatalf("window not symmetric at %d: %g vs %g", i, window[i], window[NumFFT-i])
		}
	}
}

func TestFFTImpulse(t *testing.T) {
	in := make([]float64, 16)
	in[0] = 1

	out := FFT(in)
	for k, c := range out {
		if math.Abs(real(c)-1) > 1e-12 || math.Abs(imag(c)) > 1e-12 {
			t.Errorf("bin %d = %v, want 1+0i", k, c)
		}
	}
}

func TestFFTConstant(t *testing.T) {
	in := make([]float64, 32)
	for i := range in {
		in[i] = 1
	}

	out := FFT(in)
	if math.Abs(real(out[0])-32) > 1e-9 {
		t.Errorf("DC bin = %v, want 32", out[0])
	}
	for k := 1; k < len(out); k++ {
		if math.Hypot(real(out[k]), imag(out[k])) > 1e-9 {
			t.Errorf("bin %d = %v, want 0", k, out[k])
		}
	}
}

func TestFFTMatchesDFT(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{15, 16, 25, 64, 400} {
		in := make([]float64, n)
		for i := range in {
			in[i] = rng.Float64()*2 - 1
		}

		fast := FFT(in)
		slow := dft(in)
		for k := range fast {
			if math.Hypot(real(fast[k]-slow[k]), imag(fast[k]-slow[k])) > 1e-7*float64(n) {
				t.Fatalf("n=%d bin %d: FFT %v, DFT %v", n, k, fast[k], slow[k])
			}
		}
	}
}

func TestMelFilterBank(t *testing.T) {
	filters := MelFilterBank(SampleRate, NumFFT, NumMels)

	if len(filters) != NumMels {
		t.Fatalf("filter count = %d, want %d", len(filters), NumMels)
	}
	for m, row := range filters {
		if len(row) != NumFFT/2+1 {
			t.Fatalf("filter %d has %d bins, want %d", m, len(row), NumFFT/2+1)
		}
		sum := 0.0
		for _, v := range row {
			if v < 0 {
				t.Fatalf("filter %d has negative weight %g", m, v)
			}
			sum += v
		}
		if sum <= 0 {
			t.Errorf("filter %d is all zero", m)
		}
	}
}

func TestMelScaleBreakpoint(t *testing.T) {
	// The linear and log regions meet at exactly 1 kHz (mel 15).
	if got := melToHz(15); math.Abs(got-1000) > 1e-9 {
		t.Errorf("melToHz(15) = %g, want 1000", got)
	}
	if got := melToHz(melMaxMel); math.Abs(got-8000) > 1e-6 {
		t.Errorf("melToHz(max) = %g, want 8000 (Nyquist)", got)
	}
	if got := melToHz(7.5); math.Abs(got-500) > 1e-9 {
		t.Errorf("melToHz(7.5) = %g, want 500", got)
	}
}

func TestReflectPad(t *testing.T) {
	padded := reflectPad([]float64{0, 1, 2, 3, 4}, 2)

	want := []float64{2, 1, 0, 1, 2, 3, 4, 3, 2}
	if len(padded) != len(want) {
		t.Fatalf("padded length = %d, want %d", len(padded), len(want))
	}
	for i, v := range want {
		if padded[i] != v {
			t.Errorf("padded[%d] = %g, want %g", i, padded[i], v)
		}
	}
}

func TestProcessAudio(t *testing.T) {
	// One second of a 440 Hz tone, zero-padded to 30 s by ProcessAudio.
	samples := make([]float32, SampleRate)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/SampleRate))
	}

	mel := ProcessAudio(samples)
	if len(mel) != NumFrames {
		t.Fatalf("frame count = %d, want %d", len(mel), NumFrames)
	}
	maxV := float32(math.Inf(-1))
	minV := float32(math.Inf(1))
	for _, row := range mel {
		if len(row) != NumMels {
			t.Fatalf("row length = %d, want %d", len(row), NumMels)
		}
		for _, v := range row {
			maxV = max(maxV, v)
			minV = min(minV, v)
		}
	}
	// The dynamic range after the 8 dB clamp and (x+4)/4 scale is 2.
	if got := maxV - minV; got > 2.0001 {
		t.Errorf("dynamic range = %g, want <= 2", got)
	}
	// The tone frames must be louder than the padded silence.
	if mel[10][10] <= mel[NumFrames-10][10] {
		t.Errorf("tone frame %g not louder than silence frame %g",
			mel[10][10], mel[NumFrames-10][10])
	}
}
