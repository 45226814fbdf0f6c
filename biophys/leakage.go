// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

// Leakage is the prototype for a passive (zero-gate) channel.  It is never
// copied onto compartments: channel-density import for a passive channel
// sets the compartment's Rm and Em directly.
type Leakage struct {
	Name string  `desc:"channel id"`
	Gbar float64 `desc:"maximal conductance (S)"`
	Ek   float64 `desc:"reversal potential (V)"`
}

// NewLeakage returns a new passive channel prototype with the given id.
func NewLeakage(name string) *Leakage {
	return &Leakage{Name: name}
}
