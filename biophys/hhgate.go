// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import "github.com/goki/ki/kit"

// GateForm is the form of a gate specification: interpolation tables, or an
// expression string pair in alpha/beta or tau/inf form.
type GateForm int32

//go:generate stringer -type=GateForm

var KiT_GateForm = kit.Enums.AddEnum(GateFormN, kit.NotBitFlag, nil)

const (
	// Tables is the classic table-lookup gate (HHGate)
	Tables GateForm = iota

	// AlphaBetaExpr is an expression-form gate (HHGateF) holding
	// forward/backward rate expressions
	AlphaBetaExpr

	// TauInfExpr is an expression-form gate (HHGateF) holding
	// time-constant/steady-state expressions
	TauInfExpr

	GateFormN
)

// HHGate holds the voltage (or concentration) dependence of one
// Hodgkin-Huxley gating variable as a pair of lookup tables over an evenly
// spaced grid: TableA = inf/tau and TableB = 1/tau at each grid point.
// Tables are computed once during channel construction and shared read-only
// among channel clones.
type HHGate struct {
	Min    float64   `desc:"minimum of the lookup grid (V, or M for concentration-dependent gates)"`
	Max    float64   `desc:"maximum of the lookup grid"`
	Divs   int       `desc:"number of divisions: tables hold Divs+1 points"`
	TableA []float64 `desc:"table of A = inf/tau entries"`
	TableB []float64 `desc:"table of B = 1/tau entries"`

	// UseInterpolation selects linear interpolation between grid points
	// on lookup, instead of direct indexed lookup
	UseInterpolation bool
}

// NewHHGate returns a gate with the given grid, with tables unallocated.
func NewHHGate(min, max float64, divs int) *HHGate {
	return &HHGate{Min: min, Max: max, Divs: divs}
}

// SetTables sets both tables.  Each must hold Divs+1 entries.
func (gt *HHGate) SetTables(tableA, tableB []float64) {
	gt.TableA = tableA
	gt.TableB = tableB
}

// lookup finds the table value at v, clamping below Min and above Max to the
// boundary entries, with linear interpolation if UseInterpolation is set.
func (gt *HHGate) lookup(tab []float64, v float64) float64 {
	if len(tab) == 0 {
		return 0
	}
	if v <= gt.Min {
		return tab[0]
	}
	if v >= gt.Max {
		return tab[len(tab)-1]
	}
	invDx := float64(gt.Divs) / (gt.Max - gt.Min)
	idx := int((v - gt.Min) * invDx)
	if !gt.UseInterpolation || idx >= len(tab)-1 {
		return tab[idx]
	}
	frac := (v-gt.Min)*invDx - float64(idx)
	return tab[idx]*(1-frac) + tab[idx+1]*frac
}

// LookupA looks up the A = inf/tau value at v.
func (gt *HHGate) LookupA(v float64) float64 {
	return gt.lookup(gt.TableA, v)
}

// LookupB looks up the B = 1/tau value at v.
func (gt *HHGate) LookupB(v float64) float64 {
	return gt.lookup(gt.TableB, v)
}
