// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is the sentinel for geometry arguments outside the physical
// domain (non-positive diameter).  Use errors.Is to test for it.
var ErrDomain = errors.New("domain error")

// SurfaceArea returns the membrane surface area pi*d*l of a cylindrical
// compartment with diameter dia and length length (meters).  A compartment
// with length <= 0 is treated as a sphere with surface area pi*d^2.
func SurfaceArea(dia, length float64) (float64, error) {
	if dia <= 0 {
		return 0, fmt.Errorf("%w: non-positive diameter %g", ErrDomain, dia)
	}
	if length > 0 {
		return math.Pi * dia * length, nil
	}
	return math.Pi * dia * dia, nil
}

// CrossSectionArea returns the cross-sectional area pi*(d/2)^2 of a
// compartment with diameter dia (meters).
func CrossSectionArea(dia float64) (float64, error) {
	if dia <= 0 {
		return 0, fmt.Errorf("%w: non-positive diameter %g", ErrDomain, dia)
	}
	return math.Pi * (dia / 2) * (dia / 2), nil
}

// AxialResistance returns the total axial resistance of a compartment from
// the specific resistivity (ohm m): rho*l / crossSectionArea for length > 0,
// and the spherical fallback rho*4 / (d*pi) otherwise.
func AxialResistance(resistivity, length, dia float64) (float64, error) {
	if length > 0 {
		xa, err := CrossSectionArea(dia)
		if err != nil {
			return 0, err
		}
		return resistivity * length / xa, nil
	}
	if dia <= 0 {
		return 0, fmt.Errorf("%w: non-positive diameter %g", ErrDomain, dia)
	}
	return resistivity * 4 / (dia * math.Pi), nil
}
