// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import (
	"fmt"
	"log"

	"github.com/subhacom/moose-core/biophys"
	"github.com/subhacom/moose-core/units"
)

// importBiophysics applies the cell's biophysical property lists onto its
// compartments: independent, idempotent sub-passes for specific capacitance,
// initial potential, channel densities, axial resistivity and species.
// Segment groups must already be resolved for the cell.
func (rd *Reader) importBiophysics(cell *Cell, nrn *biophys.Neuron) error {
	bp := cell.BiophysicalProperties
	if bp == nil {
		log.Printf("warning: cell %s has no biophysical properties", cell.ID)
		return nil
	}
	mp := &bp.MembraneProperties
	if err := rd.importCapacitances(cell, nrn, mp.SpecificCapacitances); err != nil {
		return err
	}
	if err := rd.importChannelsToCell(cell, nrn, mp.ChannelDensities); err != nil {
		return err
	}
	if err := rd.importInitMembPotential(cell, nrn, mp.InitMembPotentials); err != nil {
		return err
	}
	ip := &bp.IntracellularProperties
	if err := rd.importAxialResistance(cell, nrn, ip.Resistivities); err != nil {
		return err
	}
	return rd.importSpecies(cell, nrn, ip.Species)
}

// segmentsFor resolves the target segments of a property assignment: the
// named group's flattened list, or every segment for an empty group id.
func (rd *Reader) segmentsFor(cell *Cell, group string) ([]string, error) {
	groups := rd.cellGroups[cell.ID]
	if group == "" {
		group = "all"
	}
	segs, ok := groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: cell %s references unknown segment group %s", ErrLoad, cell.ID, group)
	}
	return segs, nil
}

func (rd *Reader) importCapacitances(cell *Cell, nrn *biophys.Neuron, caps []*GroupValue) error {
	for _, sc := range caps {
		cm, err := units.SI(sc.Value)
		if err != nil {
			return fmt.Errorf("%w: cell %s specific capacitance: %v", ErrLoad, cell.ID, err)
		}
		segs, err := rd.segmentsFor(cell, sc.SegmentGroup)
		if err != nil {
			return err
		}
		for _, sid := range segs {
			comp := nrn.SegComps[sid]
			sa, err := comp.SArea()
			if err != nil {
				return fmt.Errorf("cell %s compartment %s: %w", cell.ID, comp.Name, err)
			}
			comp.Cm = sa * cm
		}
	}
	return nil
}

func (rd *Reader) importInitMembPotential(cell *Cell, nrn *biophys.Neuron, pots []*GroupValue) error {
	for _, imp := range pots {
		initv, err := units.SI(imp.Value)
		if err != nil {
			return fmt.Errorf("%w: cell %s init membrane potential: %v", ErrLoad, cell.ID, err)
		}
		segs, err := rd.segmentsFor(cell, imp.SegmentGroup)
		if err != nil {
			return err
		}
		for _, sid := range segs {
			nrn.SegComps[sid].InitVm = initv
		}
	}
	return nil
}

func (rd *Reader) importAxialResistance(cell *Cell, nrn *biophys.Neuron, res []*GroupValue) error {
	for _, r := range res {
		rho, err := units.SI(r.Value)
		if err != nil {
			return fmt.Errorf("%w: cell %s resistivity: %v", ErrLoad, cell.ID, err)
		}
		segs, err := rd.segmentsFor(cell, r.SegmentGroup)
		if err != nil {
			return err
		}
		for _, sid := range segs {
			comp := nrn.SegComps[sid]
			if err := comp.SetRaFromResistivity(rho); err != nil {
				return fmt.Errorf("cell %s compartment %s: %w", cell.ID, comp.Name, err)
			}
		}
	}
	return nil
}

// importChannelsToCell applies channel densities: passive channels set the
// compartment's Rm and Em directly; active channels clone the matching
// prototype onto each target compartment with Gbar scaled by surface area.
func (rd *Reader) importChannelsToCell(cell *Cell, nrn *biophys.Neuron, densities []*ChannelDensity) error {
	for _, chdens := range densities {
		condDensity, err := units.SI(chdens.CondDensity)
		if err != nil {
			return fmt.Errorf("%w: channel density %s condDensity: %v", ErrLoad, chdens.ID, err)
		}
		erev, err := units.SI(chdens.Erev)
		if err != nil {
			return fmt.Errorf("%w: channel density %s erev: %v", ErrLoad, chdens.ID, err)
		}
		desc, ok := rd.chanDescs[chdens.IonChannel]
		if !ok {
			log.Printf("no channel with id: %s", chdens.IonChannel)
			continue
		}
		segs, err := rd.segmentsFor(cell, chdens.SegmentGroup)
		if err != nil {
			return err
		}
		if rd.Verbose {
			log.Printf("setting density of channel %s on %d segments to %g; erev=%g (passive: %v)", chdens.ID, len(segs), condDensity, erev, rd.isPassive(desc))
		}
		if rd.isPassive(desc) {
			for _, sid := range segs {
				comp := nrn.SegComps[sid]
				if err := comp.SetRmFromDensity(condDensity); err != nil {
					return fmt.Errorf("cell %s compartment %s: %w", cell.ID, comp.Name, err)
				}
				comp.Em = erev
			}
			continue
		}
		for _, sid := range segs {
			if err := rd.copyChannel(chdens, nrn.SegComps[sid], condDensity, erev); err != nil {
				return err
			}
		}
	}
	return nil
}

// copyChannel clones the channel prototype for chdens onto comp, scaling
// Gbar by the compartment's surface area.  The prototype is looked up in
// the local cache first, then in included readers' caches.
func (rd *Reader) copyChannel(chdens *ChannelDensity, comp *biophys.Compartment, condDensity, erev float64) error {
	proto := rd.findChanProto(chdens.IonChannel)
	if proto == nil {
		return fmt.Errorf("%w: no prototype channel for %s referred to by %s", ErrMissingPrototype, chdens.IonChannel, chdens.ID)
	}
	// re-import reuses the channel already connected under this density id
	var ch *biophys.HHChannel
	for _, ec := range comp.Channels {
		if ec.Name == chdens.ID {
			ch = ec
			break
		}
	}
	if ch == nil {
		ch = proto.Clone(chdens.ID)
		comp.ConnectChannel(ch)
	}
	sa, err := comp.SArea()
	if err != nil {
		return fmt.Errorf("compartment %s: %w", comp.Name, err)
	}
	ch.Gbar = sa * condDensity
	ch.Ek = erev
	return nil
}

func (rd *Reader) findChanProto(id string) *biophys.HHChannel {
	if proto, ok := rd.protoChans[id].(*biophys.HHChannel); ok {
		return proto
	}
	for _, inc := range rd.includes {
		if proto, ok := inc.protoChans[id].(*biophys.HHChannel); ok {
			return proto
		}
	}
	return nil
}

// importSpecies binds concentration pools onto compartments.  A species
// whose concentration-model id is not registered locally or in any include
// logs a warning and is skipped -- the one recoverable condition.
func (rd *Reader) importSpecies(cell *Cell, nrn *biophys.Neuron, species []*Species) error {
	for _, sp := range species {
		if rd.findPoolProto(sp.ConcentrationModel) == nil {
			log.Printf("warning: no concentrationModel %q found, skipping species %q", sp.ConcentrationModel, sp.ID)
			continue
		}
		segs, err := rd.segmentsFor(cell, sp.SegmentGroup)
		if err != nil {
			return err
		}
		for _, sid := range segs {
			if err := rd.copySpecies(sp, nrn.SegComps[sid]); err != nil {
				return err
			}
		}
	}
	return nil
}

// copySpecies clones the pool prototype onto comp, rescaling the
// accumulation constant B by the compartment's shell volume.
func (rd *Reader) copySpecies(sp *Species, comp *biophys.Compartment) error {
	proto := rd.findPoolProto(sp.ConcentrationModel)
	if proto == nil {
		return fmt.Errorf("%w: no prototype pool for %s referred to by %s", ErrMissingPrototype, sp.ConcentrationModel, sp.ID)
	}
	// re-import reuses the pool already connected under this species id
	for _, ep := range comp.Pools {
		if ep.Name == sp.ID {
			ep.B = proto.B / comp.ShellVolume(ep.Thick)
			return nil
		}
	}
	pool := proto.Clone(sp.ID)
	pool.B /= comp.ShellVolume(pool.Thick)
	comp.ConnectPool(pool)
	return nil
}

func (rd *Reader) findPoolProto(id string) *biophys.CaConc {
	if proto, ok := rd.protoPools[id]; ok {
		return proto
	}
	for _, inc := range rd.includes {
		if proto, ok := inc.protoPools[id]; ok {
			return proto
		}
	}
	return nil
}
