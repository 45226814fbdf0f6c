// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import (
	"math"
	"testing"
)

func TestHHGateLookup(t *testing.T) {
	gt := NewHHGate(0, 1, 4) // grid points at 0, 0.25, 0.5, 0.75, 1
	gt.SetTables([]float64{0, 1, 2, 3, 4}, []float64{4, 3, 2, 1, 0})

	// clamping below min / above max
	if got := gt.LookupA(-1); got != 0 {
		t.Errorf("lookup err: below min got: %v, trg: 0\n", got)
	}
	if got := gt.LookupA(2); got != 4 {
		t.Errorf("lookup err: above max got: %v, trg: 4\n", got)
	}
	if got := gt.LookupB(2); got != 0 {
		t.Errorf("lookup err: B above max got: %v, trg: 0\n", got)
	}

	// direct lookup truncates to the grid point at or below v
	if got := gt.LookupA(0.3); got != 1 {
		t.Errorf("lookup err: direct got: %v, trg: 1\n", got)
	}

	// interpolation is linear between grid points
	gt.UseInterpolation = true
	if got := gt.LookupA(0.375); math.Abs(got-1.5) > difTol {
		t.Errorf("lookup err: interp got: %v, trg: 1.5\n", got)
	}
	if got := gt.LookupB(0.375); math.Abs(got-2.5) > difTol {
		t.Errorf("lookup err: B interp got: %v, trg: 2.5\n", got)
	}
}

func TestHHGateF(t *testing.T) {
	gt := &HHGateF{}
	err := gt.SetAlphaBeta("1000 * exp((v + 0.065) / 0.02)", "500 * exp(-(v + 0.065) / 0.02)")
	if err != nil {
		t.Fatal(err)
	}
	if gt.Form != AlphaBetaExpr {
		t.Errorf("gatef err: form got: %v, trg: %v\n", gt.Form, AlphaBetaExpr)
	}
	v := -0.045
	alpha := 1000 * math.Exp((v+0.065)/0.02)
	beta := 500 * math.Exp(-(v+0.065)/0.02)
	a, err := gt.A(v)
	if err != nil {
		t.Fatal(err)
	}
	b, err := gt.B(v)
	if err != nil {
		t.Fatal(err)
	}
	CmprFloats([]float64{a, b}, []float64{alpha, alpha + beta}, "gatef alpha/beta", t)

	err = gt.SetTauInf("0.004", "1 / (1 + exp(-(v + 0.05) / 0.01))")
	if err != nil {
		t.Fatal(err)
	}
	if gt.Form != TauInfExpr {
		t.Errorf("gatef err: form got: %v, trg: %v\n", gt.Form, TauInfExpr)
	}
	inf := 1 / (1 + math.Exp(-(v+0.05)/0.01))
	a, err = gt.A(v)
	if err != nil {
		t.Fatal(err)
	}
	b, err = gt.B(v)
	if err != nil {
		t.Fatal(err)
	}
	CmprFloats([]float64{a, b}, []float64{inf / 0.004, 1 / 0.004}, "gatef tau/inf", t)
}

func TestHHGateFCompileErr(t *testing.T) {
	gt := &HHGateF{}
	if err := gt.SetAlphaBeta("1 +", "2"); err == nil {
		t.Errorf("gatef err: expected compile error\n")
	}
}
