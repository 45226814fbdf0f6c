// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import (
	"errors"
	"math"
	"testing"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-12

func CmprFloats(got, trg []float64, msg string, t *testing.T) {
	t.Helper()
	for i := range got {
		dif := math.Abs(got[i] - trg[i])
		if dif > difTol*math.Max(1, math.Abs(trg[i])) { // allow for small numerical diffs
			t.Errorf("%v err: idx: %v, got: %v, trg: %v, dif: %v\n", msg, i, got[i], trg[i], dif)
		}
	}
}

func TestSurfaceArea(t *testing.T) {
	dia, length := 5e-6, 10e-6
	sa, err := SurfaceArea(dia, length)
	if err != nil {
		t.Fatal(err)
	}
	if sa != math.Pi*dia*length {
		t.Errorf("sarea err: got: %v, trg: %v\n", sa, math.Pi*dia*length)
	}
	// sphere fallback for zero length
	sa, err = SurfaceArea(dia, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sa != math.Pi*dia*dia {
		t.Errorf("sarea err: sphere got: %v, trg: %v\n", sa, math.Pi*dia*dia)
	}
	if _, err = SurfaceArea(0, length); !errors.Is(err, ErrDomain) {
		t.Errorf("sarea err: expected ErrDomain for zero diameter, got: %v\n", err)
	}
	if _, err = SurfaceArea(-1e-6, length); !errors.Is(err, ErrDomain) {
		t.Errorf("sarea err: expected ErrDomain for negative diameter, got: %v\n", err)
	}
}

func TestCrossSectionArea(t *testing.T) {
	dia := 4e-6
	xa, err := CrossSectionArea(dia)
	if err != nil {
		t.Fatal(err)
	}
	if xa != math.Pi*(dia/2)*(dia/2) {
		t.Errorf("xarea err: got: %v, trg: %v\n", xa, math.Pi*(dia/2)*(dia/2))
	}
	if _, err = CrossSectionArea(0); !errors.Is(err, ErrDomain) {
		t.Errorf("xarea err: expected ErrDomain, got: %v\n", err)
	}
}

func TestAxialResistance(t *testing.T) {
	rho, length, dia := 1.5, 20e-6, 3e-6
	ra, err := AxialResistance(rho, length, dia)
	if err != nil {
		t.Fatal(err)
	}
	xa := math.Pi * (dia / 2) * (dia / 2)
	dif := math.Abs(ra - rho*length/xa)
	if dif > difTol*rho*length/xa {
		t.Errorf("raxial err: got: %v, trg: %v\n", ra, rho*length/xa)
	}
	// spherical fallback
	ra, err = AxialResistance(rho, 0, dia)
	if err != nil {
		t.Fatal(err)
	}
	if ra != rho*4/(dia*math.Pi) {
		t.Errorf("raxial err: sphere got: %v, trg: %v\n", ra, rho*4/(dia*math.Pi))
	}
	if _, err = AxialResistance(rho, length, 0); !errors.Is(err, ErrDomain) {
		t.Errorf("raxial err: expected ErrDomain, got: %v\n", err)
	}
}

func TestShellVolume(t *testing.T) {
	cm := NewCompartment("soma")
	cm.Dia = 10e-6
	cm.Length = 20e-6
	thick := 1e-6
	r := cm.Dia / 2
	trg := math.Pi * cm.Length * (r + thick) * (r - thick)
	if got := cm.ShellVolume(thick); math.Abs(got-trg) > difTol*trg {
		t.Errorf("shell err: cylindrical got: %v, trg: %v\n", got, trg)
	}
	cm.Length = 0
	trg = 4 * math.Pi * (r*r*r - (r-thick)*(r-thick)*(r-thick)) / 3
	if got := cm.ShellVolume(thick); math.Abs(got-trg) > difTol*trg {
		t.Errorf("shell err: spherical got: %v, trg: %v\n", got, trg)
	}
}
