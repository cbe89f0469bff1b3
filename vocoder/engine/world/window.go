package world

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

// hannAround returns a symmetric Hann window of 2*half+1 points.
func hannAround(half int) []float64 {
	if half < 1 {
		half = 1
	}
	return window.Hann(2*half + 1)
}

// blackmanAround returns a symmetric Blackman window of 2*half+1 points.
func blackmanAround(half int) []float64 {
	if half < 1 {
		half = 1
	}
	return window.Blackman(2*half + 1)
}

// normalizeEnergy scales w so that sum(w^2) == 1.
func normalizeEnergy(w []float64) {
	var e float64
	for _, v := range w {
		e += v * v
	}
	if e <= 0 {
		return
	}
	g := 1 / math.Sqrt(e)
	for i := range w {
		w[i] *= g
	}
}
