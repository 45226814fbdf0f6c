// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

// DefaultPoolB is the accumulation constant assigned to pool prototypes:
// B = 5.2e-6 / (A*d) where A is the shell area and d its thickness, so it
// must be divided by the shell volume when the pool is copied onto a
// compartment.
const DefaultPoolB = 5.2e-6

// CaConc is a decaying calcium pool in a submembrane shell: influx
// accumulates scaled by B and decays back to CaBasal with time constant Tau.
type CaConc struct {
	Name    string  `desc:"pool name, from the concentration model id or the species id on clones"`
	CaBasal float64 `desc:"basal (resting) concentration (M)"`
	Tau     float64 `desc:"decay time constant (s)"`
	Thick   float64 `desc:"thickness of the submembrane shell (m)"`
	B       float64 `desc:"volume-normalization constant -- divided by the per-compartment shell volume at copy time"`
	Ca      float64 `desc:"current concentration (M) -- engine state"`
}

// NewCaConc returns a new pool prototype with the given name and the
// default accumulation constant.
func NewCaConc(name string) *CaConc {
	return &CaConc{Name: name, B: DefaultPoolB}
}

// Clone returns a copy of the pool under a new name.
func (ca *CaConc) Clone(name string) *CaConc {
	nc := &CaConc{}
	*nc = *ca
	nc.Name = name
	return nc
}
