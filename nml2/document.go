// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import "github.com/subhacom/moose-core/lems"

// Document is a parsed NeuroML2-style description: typed descriptors for ion
// channels, concentration pools, cells, inputs, networks and generic
// component types.  It is produced by an external parser -- the translation
// core only consumes it.  All quantity fields are strings with units,
// converted through the units package at import time.
type Document struct {
	ID                  string
	IonChannels         []*IonChannel
	ConcentrationModels []*DecayingPoolConcentrationModel
	PulseGenerators     []*PulseGenerator
	Cells               []*Cell
	Networks            []*Network
	ComponentTypes      []*lems.ComponentType
}

// ComponentType returns the named generic component type, nil if undeclared.
func (doc *Document) ComponentType(name string) *lems.ComponentType {
	for _, ct := range doc.ComponentTypes {
		if ct.Name == name {
			return ct
		}
	}
	return nil
}

//////////////////////////////////////////////////////////////////////////////
//  Ion channels

// IonChannel describes one ion channel: its gates and their rate schemes.
// A channel with no gates is passive.
type IonChannel struct {
	ID    string
	Type  string  // "ionChannelHH", "ionChannelPassive", or ""
	Gates []*Gate // at most 3 -- more is a fatal TooManyGates
}

// NumGates returns the number of declared gates.
func (ch *IonChannel) NumGates() int {
	return len(ch.Gates)
}

// Gate describes one gating variable: its instance count and the rate
// schemes defining its kinetics.  The standard form carries forward/reverse
// rates; extended forms (gateHHratesTau, gateHHratesInf, gateHHratesTauInf)
// additionally override the time course and/or steady state.
type Gate struct {
	ID          string
	Type        string   // "", "gateHHrates", "gateHHratesTau", "gateHHratesInf", "gateHHratesTauInf", "gateHHtauInf"
	Instances   float64  // power on the gate's state variable
	ForwardRate *RateSpec
	ReverseRate *RateSpec
	TimeCourse  *RateSpec
	SteadyState *RateSpec
	Q10Settings *Q10Settings
}

// RateSpec describes one rate / time-constant / steady-state scheme: one of
// the four built-in closed forms, or the name of a generic component type to
// delegate to the external evaluator.
type RateSpec struct {
	Type     string // "HHExpRate", "HHSigmoidRate", "HHSigmoidVariable", "HHExpLinearRate", or a component type name
	Rate     string // quantity strings for the closed forms
	Midpoint string
	Scale    string
}

// Q10Settings describes temperature scaling for a gate's time constant.
type Q10Settings struct {
	Type             string // "q10Fixed" or "q10ExpTemp"
	FixedQ10         string
	Q10Factor        string
	ExperimentalTemp string
}

//////////////////////////////////////////////////////////////////////////////
//  Pools and inputs

// DecayingPoolConcentrationModel describes a decaying calcium pool.
type DecayingPoolConcentrationModel struct {
	ID             string
	Name           string // optional display name -- prototype named by it when set
	RestingConc    string
	DecayConstant  string
	ShellThickness string
}

// PulseGenerator describes a current pulse input source.
type PulseGenerator struct {
	ID        string
	Delay     string
	Duration  string
	Amplitude string
}

//////////////////////////////////////////////////////////////////////////////
//  Cells

// Cell describes one cell: its morphology and biophysical properties.
type Cell struct {
	ID                    string
	Morphology            *Morphology
	BiophysicalProperties *BiophysicalProperties
}

// Morphology is the cell's segment tree and named segment groups.
type Morphology struct {
	Segments      []*Segment
	SegmentGroups []*SegmentGroup
}

// Segment is one piece of the morphology: a frustum between a proximal and
// a distal point.  A missing proximal point inherits the parent's distal
// point.  Positions and diameters are in microns.
type Segment struct {
	ID       string
	Name     string // compartment name -- "comp_<id>" fallback when empty
	Parent   string // parent segment id, empty for the root
	Proximal *Point
	Distal   *Point
}

// Point is a morphological point: position and local diameter in microns.
type Point struct {
	X, Y, Z float64
	Dia     float64
}

// SegmentGroup is a named set of segments, possibly including other groups
// transitively.
type SegmentGroup struct {
	ID       string
	Members  []string // segment ids
	Includes []string // other group ids, flattened transitively on resolve
}

// BiophysicalProperties lists the property assignments applied onto the
// cell's compartments via segment groups.
type BiophysicalProperties struct {
	MembraneProperties      MembraneProperties
	IntracellularProperties IntracellularProperties
}

// MembraneProperties are the membrane-side property assignments.
type MembraneProperties struct {
	ChannelDensities     []*ChannelDensity
	SpecificCapacitances []*GroupValue
	InitMembPotentials   []*GroupValue
}

// IntracellularProperties are the intracellular property assignments.
type IntracellularProperties struct {
	Resistivities []*GroupValue
	Species       []*Species
}

// GroupValue is a quantity applied across a segment group.  An empty group
// targets every segment.
type GroupValue struct {
	Value        string
	SegmentGroup string
}

// ChannelDensity places an ion channel at a conductance density over a
// segment group.
type ChannelDensity struct {
	ID           string
	IonChannel   string // channel id
	CondDensity  string
	Erev         string
	SegmentGroup string
}

// Species binds a concentration model to a segment group.
type Species struct {
	ID                 string
	ConcentrationModel string // pool prototype id
	SegmentGroup       string
}

//////////////////////////////////////////////////////////////////////////////
//  Networks

// Network describes populations of cells and the inputs wired to them.
type Network struct {
	ID             string
	Type           string // "networkWithTemperature" enables the temperature field
	Temperature    string
	Populations    []*Population
	ExplicitInputs []*ExplicitInput
	InputLists     []*InputList
}

// Population clones a cell prototype size times.
type Population struct {
	ID        string
	Component string // cell prototype id
	Size      int
}

// ExplicitInput wires one input source to one target compartment, with the
// target encoded as "<population>[<index>]" plus an optional "/<segmentId>"
// (default segment 0).
type ExplicitInput struct {
	Target string
	Input  string // input source id
}

// InputList wires one input source to many targets of one population.
type InputList struct {
	ID         string
	Component  string // input source id
	Population string
	Inputs     []*Input
}

// Input is one entry of an InputList.
type Input struct {
	ID         string
	TargetCell int
	Segment    string // empty = segment 0
}
