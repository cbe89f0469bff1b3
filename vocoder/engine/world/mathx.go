//go:build !fastmath

package world

import "math"

func mathLog(x float64) float64 { return math.Log(x) }

func mathExp(x float64) float64 { return math.Exp(x) }

func mathSqrt(x float64) float64 { return math.Sqrt(x) }
