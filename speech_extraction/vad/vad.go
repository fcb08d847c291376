// Package vad scores audio frames by spectral flux. A rising flux means a
// new sound has started; the capture loop compares successive scores to
// decide when speech begins and ends.
package vad

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

type Detector struct {
	size     int
	previous []float64
}

func New(frameSize int) *Detector {
	if frameSize < 1 {
		frameSize = 1
	}

	return &Detector{
		size:     frameSize,
		previous: make([]float64, frameSize/2+1),
	}
}

// Flux returns the summed positive change in magnitude spectrum between
// this frame and the last one. Frames shorter than the detector size are
// zero padded, longer ones truncated.
func (d *Detector) Flux(frame []int16) float64 {
	samples := make([]float64, d.size)
	for i := 0; i < d.size && i < len(frame); i++ {
		samples[i] = float64(frame[i]) / 32768
	}

	window.Apply(samples, window.Hamming)

	spectrum := fft.FFTReal(samples)

	var flux float64

	for i := range d.previous {
		magnitude := cmplx.Abs(spectrum[i])

		if diff := magnitude - d.previous[i]; diff > 0 {
			flux += diff
		}

		d.previous[i] = magnitude
	}

	return flux
}
