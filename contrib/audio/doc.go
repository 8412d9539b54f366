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

// Package audio implements the feature extraction front end for speech
// models: a Hann window, an FFT, a mel filterbank projection and the
// Whisper log-mel spectrogram built from them.
//
// # Pipeline
//
//  1. Reflect-pad the raw 16 kHz waveform by half a frame on each side.
//  2. For each hop, window one frame and take its power spectrum.
//  3. Project the spectrum through 80 triangular mel filters
//     (librosa-compatible break frequencies, Slaney normalization).
//  4. log10, clamp to 8 dB below the global peak, scale into model range.
//
// # Example Usage
//
//	import "github.com/ajroetker/go-tensorir/contrib/audio"
//
//	mel := audio.ProcessAudio(samples) // [3000][80]float32
//
// The constants match the Whisper preprocessing exactly; feeding the
// output to a Whisper encoder requires no further normalization.
package audio
