// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package nml2 translates parsed NeuroML2-style descriptor documents into the
biophys object graph: channel prototypes with derived gate tables, cell
prototypes with linked compartments, biophysical property bindings, and
network populations with their inputs.  The Reader owns the prototype caches
for its lifetime; reading the same document into the same library twice
reuses every object at its canonical path.
*/
package nml2

import (
	"fmt"
	"log"

	"github.com/subhacom/moose-core/biophys"
	"github.com/subhacom/moose-core/lems"
	"github.com/subhacom/moose-core/units"
)

// ComponentEvaluator is the external evaluator contract: given a generic
// component-type definition and a binding of required-variable name to
// scalar, produce the component's derived variables.  It is invoked once per
// grid sample while filling gate tables.
type ComponentEvaluator interface {
	Evaluate(ct *lems.ComponentType, req map[string]float64) (map[string]float64, error)
}

// Reader translates descriptor documents into engine objects under a
// Library.  One Reader per description; descriptions including other
// descriptions hold read-only references to the included Readers' caches
// through AddInclude.
type Reader struct {
	Lib *biophys.Library `desc:"library the object graph is rooted in"`

	VMin      float64 `def:"-0.15" desc:"minimum of the voltage grid for gate tables (V)"`
	VMax      float64 `def:"0.1" desc:"maximum of the voltage grid (V)"`
	VDivs     int     `def:"5000" desc:"number of voltage grid divisions: tables hold VDivs+1 points"`
	LUnit     float64 `def:"1e-06" desc:"length unit for morphology positions (m) -- micron by default"`
	Symmetric bool    `def:"true" desc:"create symmetric compartments: axial links use proximal/distal endpoint names instead of axial/raxial"`
	Verbose   bool    `desc:"print diagnostics while reading -- no behavioral effect"`

	// Eval evaluates generic component-type rate schemes.  Defaults to a
	// lems.Evaluator; replaceable for testing or alternative engines.
	Eval ComponentEvaluator

	Doc *Document `view:"-" desc:"document of the last Read"`

	network    *Network
	temp       float64 // model temperature (celsius)
	protoCells map[string]*biophys.Neuron
	protoChans map[string]any // *biophys.HHChannel or *biophys.Leakage
	protoPools map[string]*biophys.CaConc
	chanDescs  map[string]*IonChannel
	cellGroups map[string]map[string][]string // cell id -> group id -> segment ids
	segToComp  map[string]map[string]string   // cell id -> segment id -> compartment name
	popCells   map[string]map[int]*biophys.Neuron
	popType    map[string]string // population id -> cell prototype id
	includes   map[string]*Reader
}

// NewReader returns a Reader building into the given library, with default
// configuration.
func NewReader(lib *biophys.Library) *Reader {
	rd := &Reader{Lib: lib}
	rd.Defaults()
	return rd
}

// Defaults sets default parameter values and (re)initializes the caches.
func (rd *Reader) Defaults() {
	rd.VMin = -150e-3
	rd.VMax = 100e-3
	rd.VDivs = 5000
	rd.LUnit = 1e-6
	rd.Symmetric = true
	if rd.Eval == nil {
		rd.Eval = lems.NewEvaluator()
	}
	rd.protoCells = make(map[string]*biophys.Neuron)
	rd.protoChans = make(map[string]any)
	rd.protoPools = make(map[string]*biophys.CaConc)
	rd.chanDescs = make(map[string]*IonChannel)
	rd.cellGroups = make(map[string]map[string][]string)
	rd.segToComp = make(map[string]map[string]string)
	rd.popCells = make(map[string]map[int]*biophys.Neuron)
	rd.popType = make(map[string]string)
	rd.includes = make(map[string]*Reader)
}

// AddInclude registers another description's Reader: prototype lookups that
// miss the local caches consult included Readers' caches read-only.
func (rd *Reader) AddInclude(name string, inc *Reader) {
	rd.includes[name] = inc
}

// Read translates doc into the library.  Any failure is fatal to the whole
// call: no partial population is materialized, but prototypes built before
// the failure remain cached.
func (rd *Reader) Read(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrLoad)
	}
	rd.Doc = doc
	rd.network = nil
	if len(doc.Networks) > 0 {
		rd.network = doc.Networks[0]
	}
	var err error
	rd.temp, err = rd.getTemperature()
	if err != nil {
		return err
	}
	if rd.Verbose {
		log.Printf("reading document %s at %g celsius", doc.ID, rd.temp)
	}

	if err := rd.importConcentrationModels(doc); err != nil {
		return err
	}
	if err := rd.importIonChannels(doc); err != nil {
		return err
	}
	if err := rd.importInputs(doc); err != nil {
		return err
	}
	for _, cell := range doc.Cells {
		if err := rd.createCellPrototype(cell); err != nil {
			return err
		}
	}
	if rd.network != nil {
		if err := rd.createPopulations(); err != nil {
			return err
		}
		if err := rd.createInputs(); err != nil {
			return err
		}
	}
	return nil
}

// Temperature returns the model temperature (celsius) of the last Read:
// the network's declared temperature for networkWithTemperature, 0 for a
// network without one, 25 when there is no network at all.
func (rd *Reader) Temperature() float64 {
	return rd.temp
}

func (rd *Reader) getTemperature() (float64, error) {
	if rd.network == nil {
		return 25, nil
	}
	if rd.network.Type != "networkWithTemperature" {
		return 0, nil
	}
	t, err := units.SI(rd.network.Temperature)
	if err != nil {
		return 0, fmt.Errorf("%w: network %s temperature: %v", ErrLoad, rd.network.ID, err)
	}
	return t, nil
}

// CellProto returns the cached cell prototype for the given id, nil if the
// document declared none.
func (rd *Reader) CellProto(id string) *biophys.Neuron {
	return rd.protoCells[id]
}

// ChanProto returns the cached channel prototype (a *biophys.HHChannel or
// *biophys.Leakage) for the given id, nil if none.
func (rd *Reader) ChanProto(id string) any {
	return rd.protoChans[id]
}

// PoolProto returns the cached pool prototype for the given id, nil if none.
func (rd *Reader) PoolProto(id string) *biophys.CaConc {
	return rd.protoPools[id]
}

// CellInPopulation returns the cloned cell at the given population index,
// nil if not materialized.
func (rd *Reader) CellInPopulation(popID string, idx int) *biophys.Neuron {
	return rd.popCells[popID][idx]
}

// createCellPrototype builds (or reuses) the cell prototype at
// <library>/<cellId>: morphology first, then biophysics, which requires the
// resolved segment groups.
func (rd *Reader) createCellPrototype(cell *Cell) error {
	nrn := rd.Lib.GetOrAdd(cell.ID, func() any { return biophys.NewNeuron(cell.ID) }).(*biophys.Neuron)
	rd.protoCells[cell.ID] = nrn
	if err := rd.createMorphology(cell, nrn); err != nil {
		return err
	}
	return rd.importBiophysics(cell, nrn)
}

// importConcentrationModels creates pool prototypes at <library>/<poolId>.
func (rd *Reader) importConcentrationModels(doc *Document) error {
	for _, cm := range doc.ConcentrationModels {
		if err := rd.createDecayingPool(cm); err != nil {
			return err
		}
	}
	return nil
}

func (rd *Reader) createDecayingPool(cm *DecayingPoolConcentrationModel) error {
	name := cm.Name
	if name == "" {
		name = cm.ID
	}
	ca := rd.Lib.GetOrAdd(name, func() any { return biophys.NewCaConc(name) }).(*biophys.CaConc)
	var err error
	if ca.CaBasal, err = units.SI(cm.RestingConc); err != nil {
		return fmt.Errorf("%w: concentration model %s restingConc: %v", ErrLoad, cm.ID, err)
	}
	if ca.Tau, err = units.SI(cm.DecayConstant); err != nil {
		return fmt.Errorf("%w: concentration model %s decayConstant: %v", ErrLoad, cm.ID, err)
	}
	if ca.Thick, err = units.SI(cm.ShellThickness); err != nil {
		return fmt.Errorf("%w: concentration model %s shellThickness: %v", ErrLoad, cm.ID, err)
	}
	ca.B = biophys.DefaultPoolB
	rd.protoPools[cm.ID] = ca
	if rd.Verbose {
		log.Printf("created pool prototype %s for %s", name, cm.ID)
	}
	return nil
}

// importInputs creates pulse generator prototypes at
// <library>/inputs/<inputId>.
func (rd *Reader) importInputs(doc *Document) error {
	for _, pgd := range doc.PulseGenerators {
		path := "inputs/" + pgd.ID
		pg := rd.Lib.GetOrAdd(path, func() any { return biophys.NewPulseGen(pgd.ID) }).(*biophys.PulseGen)
		var err error
		if pg.FirstDelay, err = units.SI(pgd.Delay); err != nil {
			return fmt.Errorf("%w: pulse generator %s delay: %v", ErrLoad, pgd.ID, err)
		}
		if pg.FirstWidth, err = units.SI(pgd.Duration); err != nil {
			return fmt.Errorf("%w: pulse generator %s duration: %v", ErrLoad, pgd.ID, err)
		}
		if pg.FirstLevel, err = units.SI(pgd.Amplitude); err != nil {
			return fmt.Errorf("%w: pulse generator %s amplitude: %v", ErrLoad, pgd.ID, err)
		}
		pg.SecondDelay = 1e9
	}
	return nil
}
