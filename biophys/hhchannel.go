// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import "strings"

// HHChannel is a Hodgkin-Huxley type ion channel with up to three
// independent gates on the X, Y and Z axes.  As a prototype it lives in the
// Library under its channel id; channel-density import clones it onto
// compartments with the per-compartment Gbar and Ek set.
type HHChannel struct {
	Name   string  `desc:"channel name -- the prototype's channel id, or the density id on clones"`
	Gbar   float64 `desc:"maximal conductance (S) -- surface area times conductance density on clones"`
	Ek     float64 `desc:"reversal potential (V)"`
	Xpower float64 `desc:"number of instances of the X gate (exponent on its state variable)"`
	Ypower float64 `desc:"number of instances of the Y gate"`
	Zpower float64 `desc:"number of instances of the Z gate"`

	GateX *HHGate `desc:"X axis gate -- nil if Xpower is 0"`
	GateY *HHGate `desc:"Y axis gate -- nil if Ypower is 0"`
	GateZ *HHGate `desc:"Z axis gate -- nil if Zpower is 0"`

	// GatePaths maps each descriptor gate path (chanId/gateId) to its gate
	// axis path (chanId/X etc.), so references into the description can be
	// retargeted after the prototype is cloned under a new id.
	GatePaths map[string]string
}

// NewHHChannel returns a new channel prototype with the given id.
func NewHHChannel(name string) *HHChannel {
	return &HHChannel{Name: name, GatePaths: make(map[string]string)}
}

// NumGates returns the number of gates with a non-zero power.
func (ch *HHChannel) NumGates() int {
	n := 0
	for _, p := range []float64{ch.Xpower, ch.Ypower, ch.Zpower} {
		if p > 0 {
			n++
		}
	}
	return n
}

// SetGate sets the gate, power and path mapping for one axis
// ("X", "Y" or "Z").
func (ch *HHChannel) SetGate(axis string, gt *HHGate, power float64, descGate string) {
	switch axis {
	case "X":
		ch.GateX, ch.Xpower = gt, power
	case "Y":
		ch.GateY, ch.Ypower = gt, power
	case "Z":
		ch.GateZ, ch.Zpower = gt, power
	}
	if descGate != "" {
		ch.GatePaths[ch.Name+"/"+descGate] = ch.Name + "/" + axis
	}
}

// Clone returns a copy of the channel under a new name.  Gates are shared
// (their tables are immutable once built); the gate path map is copied with
// every path rewritten from the prototype's id to the new name, so no
// accumulating side table is needed across many duplications.
func (ch *HHChannel) Clone(name string) *HHChannel {
	nc := &HHChannel{}
	*nc = *ch
	nc.Name = name
	nc.GatePaths = make(map[string]string, len(ch.GatePaths))
	for p, ap := range ch.GatePaths {
		np := strings.Replace(p, ch.Name+"/", name+"/", 1)
		nc.GatePaths[np] = strings.Replace(ap, ch.Name+"/", name+"/", 1)
	}
	return nc
}
