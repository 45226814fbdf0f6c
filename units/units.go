// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package units converts quantity strings of the form used in NeuroML2 model
descriptions -- a decimal number followed by an optional unit suffix, such as
"-65mV", "0.5 ms" or "0.3 mS_per_cm2" -- into plain float64 numbers in SI
base units (concentration uses molar as its base, temperature uses celsius).

The conversion is pure and stateless: a fixed table maps each known unit
suffix to its multiplicative factor.
*/
package units

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnit is the sentinel for any conversion failure: an unknown unit suffix
// or a malformed numeral.  Use errors.Is to test for it.
var ErrUnit = errors.New("unit error")

// factors maps unit suffix -> multiplicative factor into base units.
// Covers the NeuroML2 core dimensions: voltage, time, per-time, length,
// resistance, resistivity, conductance, conductance density, capacitance,
// specific capacitance, current, concentration (molar base) and
// temperature (celsius base).
var factors = map[string]float64{
	// voltage
	"V":  1,
	"mV": 1e-3,
	"uV": 1e-6,
	// time
	"s":  1,
	"ms": 1e-3,
	"us": 1e-6,
	// per-time
	"per_s":  1,
	"per_ms": 1e3,
	"Hz":     1,
	// length
	"m":  1,
	"cm": 1e-2,
	"mm": 1e-3,
	"um": 1e-6,
	// resistance
	"ohm":  1,
	"kohm": 1e3,
	"Mohm": 1e6,
	// resistivity -- 1 ohm cm = 0.01 ohm m
	"ohm_m":   1,
	"ohm_cm":  1e-2,
	"kohm_cm": 10,
	// conductance
	"S":  1,
	"mS": 1e-3,
	"uS": 1e-6,
	"nS": 1e-9,
	"pS": 1e-12,
	// conductance density -- 1 mS/cm2 = 10 S/m2
	"S_per_m2":   1,
	"mS_per_cm2": 10,
	"S_per_cm2":  1e4,
	// capacitance
	"F":  1,
	"uF": 1e-6,
	"nF": 1e-9,
	"pF": 1e-12,
	// specific capacitance -- 1 uF/cm2 = 0.01 F/m2
	"F_per_m2":   1,
	"uF_per_cm2": 1e-2,
	// current
	"A":  1,
	"mA": 1e-3,
	"uA": 1e-6,
	"nA": 1e-9,
	"pA": 1e-12,
	// concentration, molar base
	"M":          1,
	"mM":         1e-3,
	"uM":         1e-6,
	"nM":         1e-9,
	"mol_per_m3": 1e-3,
	// temperature, celsius base
	"degC": 1,
}

// quantity = decimal numeral, optional whitespace, optional unit suffix
var qtyRe = regexp.MustCompile(`^([+-]?[0-9.]+(?:[eE][+-]?[0-9]+)?)\s*([A-Za-z][A-Za-z0-9_]*)?$`)

// SI converts a quantity string to a number in base units.
// A bare numeral converts as-is.  Unknown unit suffixes and malformed
// numerals return an error wrapping ErrUnit.
func SI(q string) (float64, error) {
	m := qtyRe.FindStringSubmatch(strings.TrimSpace(q))
	if m == nil {
		return 0, fmt.Errorf("%w: malformed quantity %q", ErrUnit, q)
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed numeral %q in %q", ErrUnit, m[1], q)
	}
	if m[2] == "" {
		return val, nil
	}
	fact, ok := factors[m[2]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q in %q", ErrUnit, m[2], q)
	}
	return val * fact, nil
}

// MustSI is like SI but panics on error -- for literals in tests and examples.
func MustSI(q string) float64 {
	val, err := SI(q)
	if err != nil {
		panic(err)
	}
	return val
}
