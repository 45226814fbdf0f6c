// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import "math"

// Compartment is the lumped-element RC model of one piece of membrane:
// a cylinder (or sphere, for zero length) with membrane capacitance,
// leak resistance, axial resistance, and the channels, calcium pools and
// injection sources attached to it.  Positions are in meters.
type Compartment struct {
	Name   string  `desc:"compartment name within its cell, from the segment's declared name or a generated fallback"`
	X0     float64 `desc:"proximal endpoint x position (m)"`
	Y0     float64 `desc:"proximal endpoint y position (m)"`
	Z0     float64 `desc:"proximal endpoint z position (m)"`
	X      float64 `desc:"distal endpoint x position (m)"`
	Y      float64 `desc:"distal endpoint y position (m)"`
	Z      float64 `desc:"distal endpoint z position (m)"`
	Length float64 `desc:"euclidean distance between the endpoints (m) -- 0 means spherical"`
	Dia    float64 `desc:"diameter (m), arithmetic mean of the two endpoint diameters"`
	Cm     float64 `desc:"membrane capacitance (F)"`
	Rm     float64 `desc:"membrane (leak) resistance (ohm)"`
	Ra     float64 `desc:"axial resistance to the parent compartment (ohm)"`
	InitVm float64 `desc:"initial membrane potential (V)"`
	Em     float64 `desc:"leak reversal potential (V)"`
	Inject float64 `desc:"constant injection current (A)"`

	Parent  *Compartment `desc:"parent compartment of the axial link -- nil for the root"`
	SrcSlot string       `desc:"name of this compartment's endpoint on the axial link (axial or proximal)"`
	DstSlot string       `desc:"name of the parent's endpoint on the axial link (raxial or distal)"`

	Channels  []*HHChannel `desc:"active channels connected to this compartment"`
	Pools     []*CaConc    `desc:"calcium pools connected to this compartment"`
	Injectors []*PulseGen  `desc:"input sources connected to the injection input"`
}

// NewCompartment returns a new named compartment.
func NewCompartment(name string) *Compartment {
	return &Compartment{Name: name}
}

// SetEndpoints sets both endpoint positions (m) and updates Length to the
// euclidean distance between them.
func (cm *Compartment) SetEndpoints(x0, y0, z0, x, y, z float64) {
	cm.X0, cm.Y0, cm.Z0 = x0, y0, z0
	cm.X, cm.Y, cm.Z = x, y, z
	cm.Length = math.Sqrt((x-x0)*(x-x0) + (y-y0)*(y-y0) + (z-z0)*(z-z0))
}

// SArea returns the membrane surface area, with the spherical fallback
// for zero-length compartments.
func (cm *Compartment) SArea() (float64, error) {
	return SurfaceArea(cm.Dia, cm.Length)
}

// XArea returns the cross-sectional area.
func (cm *Compartment) XArea() (float64, error) {
	return CrossSectionArea(cm.Dia)
}

// SetRaFromResistivity sets the total axial resistance Ra from the specific
// axial resistivity (ohm m).
func (cm *Compartment) SetRaFromResistivity(resistivity float64) error {
	ra, err := AxialResistance(resistivity, cm.Length, cm.Dia)
	if err != nil {
		return err
	}
	cm.Ra = ra
	return nil
}

// SetRmFromDensity sets the membrane resistance Rm = 1 / (density * area)
// from a passive conductance density (S/m2).
func (cm *Compartment) SetRmFromDensity(condDensity float64) error {
	sa, err := cm.SArea()
	if err != nil {
		return err
	}
	cm.Rm = 1 / (condDensity * sa)
	return nil
}

// ConnectAxial links this compartment to its parent, recording the
// endpoint names for the link (axial/raxial for asymmetric compartments,
// proximal/distal for symmetric ones).
func (cm *Compartment) ConnectAxial(parent *Compartment, src, dst string) {
	cm.Parent = parent
	cm.SrcSlot = src
	cm.DstSlot = dst
}

// ConnectChannel connects an active channel's output into this compartment.
func (cm *Compartment) ConnectChannel(ch *HHChannel) {
	cm.Channels = append(cm.Channels, ch)
}

// ConnectPool connects a calcium pool to this compartment.
func (cm *Compartment) ConnectPool(ca *CaConc) {
	cm.Pools = append(cm.Pools, ca)
}

// ConnectInject connects an input source's output to this compartment's
// injection input.
func (cm *Compartment) ConnectInject(pg *PulseGen) {
	cm.Injectors = append(cm.Injectors, pg)
}

// ShellVolume returns the volume of a submembrane shell of the given
// thickness (m): a cylindrical shell for length > 0, the spherical shell
// formula otherwise.
func (cm *Compartment) ShellVolume(thick float64) float64 {
	r := cm.Dia / 2
	if cm.Length <= 0 {
		return 4 * math.Pi * (r*r*r - (r-thick)*(r-thick)*(r-thick)) / 3
	}
	return math.Pi * cm.Length * (r + thick) * (r - thick)
}

// Clone returns a deep copy of this compartment: channels and pools are
// cloned, gate tables are shared (they are immutable after construction).
// The axial link is not carried over -- the owning Neuron re-links clones.
func (cm *Compartment) Clone() *Compartment {
	nc := &Compartment{}
	*nc = *cm
	nc.Parent = nil
	nc.Channels = make([]*HHChannel, len(cm.Channels))
	for i, ch := range cm.Channels {
		nc.Channels[i] = ch.Clone(ch.Name)
	}
	nc.Pools = make([]*CaConc, len(cm.Pools))
	for i, ca := range cm.Pools {
		nc.Pools[i] = ca.Clone(ca.Name)
	}
	nc.Injectors = append([]*PulseGen(nil), cm.Injectors...)
	return nc
}
