// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package hhfit provides the closed-form rate functions for standard
Hodgkin-Huxley style gate kinetics.  Each function computes a rate (or time
constant, or steady-state value) from the membrane potential v and the three
parameters (rate, scale, midpoint) that the NeuroML2 standard rate schemes
carry.  All functions are pure and operate on a single grid point -- callers
sweep them over a voltage table.
*/
package hhfit

import "math"

// Exponential computes rate * exp((v - midpoint) / scale).
// This is the HHExpRate scheme.
func Exponential(v, rate, scale, midpoint float64) float64 {
	return rate * math.Exp((v-midpoint)/scale)
}

// Sigmoid computes rate / (1 + exp((midpoint - v) / scale)).
// This is the HHSigmoidRate scheme.
func Sigmoid(v, rate, scale, midpoint float64) float64 {
	return rate / (1 + math.Exp((midpoint-v)/scale))
}

// SigmoidVariable is the HHSigmoidVariable scheme, which shares the
// sigmoid closed form -- it differs only in what the result means
// (a steady-state variable instead of a rate).
func SigmoidVariable(v, rate, scale, midpoint float64) float64 {
	return Sigmoid(v, rate, scale, midpoint)
}

// ExpLinear computes rate * x / (1 - exp(-x)) with x = (v - midpoint) / scale.
// This is the HHExpLinearRate (linoid) scheme.  The singularity at
// v == midpoint is removable: the limit value is rate.
func ExpLinear(v, rate, scale, midpoint float64) float64 {
	if v == midpoint {
		return rate
	}
	x := (v - midpoint) / scale
	return rate * x / (1 - math.Exp(-x))
}
