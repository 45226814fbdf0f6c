// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

// Neuron is a cell prototype: an ordered list of linked compartments plus
// the lookup tables that later import passes and population wiring consult
// (segment id to compartment, resolved segment groups).  Prototypes are
// built once and cloned per population member; clones are fully detached
// and independently mutable.
type Neuron struct {
	Name  string         `desc:"cell id"`
	Comps []*Compartment `desc:"compartments in declaration order"`

	// CompMap maps compartment name to compartment
	CompMap map[string]*Compartment

	// SegComps maps morphological segment id to its compartment
	SegComps map[string]*Compartment

	// Groups maps segment-group id to its fully resolved, de-duplicated,
	// order-preserving segment id list.  "all" is always defined.
	Groups map[string][]string
}

// NewNeuron returns a new empty cell prototype with the given id.
func NewNeuron(name string) *Neuron {
	return &Neuron{
		Name:     name,
		CompMap:  make(map[string]*Compartment),
		SegComps: make(map[string]*Compartment),
		Groups:   make(map[string][]string),
	}
}

// AddComp appends a compartment and indexes it by name and segment id.
func (nr *Neuron) AddComp(cm *Compartment, segID string) {
	nr.Comps = append(nr.Comps, cm)
	nr.CompMap[cm.Name] = cm
	nr.SegComps[segID] = cm
}

// CompByName returns the named compartment, nil if not found.
func (nr *Neuron) CompByName(name string) *Compartment {
	return nr.CompMap[name]
}

// NAxialLinks returns the number of compartments linked to a parent.
// A well-formed cell of N compartments has N-1 links.
func (nr *Neuron) NAxialLinks() int {
	n := 0
	for _, cm := range nr.Comps {
		if cm.Parent != nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the cell under a new name: compartments are
// cloned, axial links re-targeted to the cloned parents, and the segment
// and group tables rebuilt.  The clone shares nothing mutable with the
// prototype.
func (nr *Neuron) Clone(name string) *Neuron {
	nn := NewNeuron(name)
	cloneOf := make(map[*Compartment]*Compartment, len(nr.Comps))
	for _, cm := range nr.Comps {
		nc := cm.Clone()
		nn.Comps = append(nn.Comps, nc)
		nn.CompMap[nc.Name] = nc
		cloneOf[cm] = nc
	}
	// several segment ids may share one compartment
	for sid, cm := range nr.SegComps {
		nn.SegComps[sid] = cloneOf[cm]
	}
	// re-link axial connections via compartment names
	for i, cm := range nr.Comps {
		if cm.Parent == nil {
			continue
		}
		nn.Comps[i].ConnectAxial(nn.CompMap[cm.Parent.Name], cm.SrcSlot, cm.DstSlot)
	}
	for gid, segs := range nr.Groups {
		nn.Groups[gid] = append([]string(nil), segs...)
	}
	return nn
}
