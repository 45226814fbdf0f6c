// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/subhacom/moose-core/biophys"
)

// createPopulations clones each population's cell prototype size times into
// <library>/<populationId>/<index> for indices 0..size-1.  Materialization
// is all-or-nothing per population: a missing prototype aborts before any
// member is created.
func (rd *Reader) createPopulations() error {
	for _, pop := range rd.network.Populations {
		proto, ok := rd.protoCells[pop.Component]
		if !ok {
			return fmt.Errorf("%w: no prototype cell %s for population %s", ErrMissingPrototype, pop.Component, pop.ID)
		}
		members := make(map[int]*biophys.Neuron, pop.Size)
		for i := 0; i < pop.Size; i++ {
			path := pop.ID + "/" + strconv.Itoa(i)
			cell := rd.Lib.GetOrAdd(path, func() any { return proto.Clone(strconv.Itoa(i)) }).(*biophys.Neuron)
			members[i] = cell
			if rd.Verbose {
				log.Printf("created instance %d/%d of cell %s under %s", i, pop.Size, pop.Component, pop.ID)
			}
		}
		rd.popCells[pop.ID] = members
		rd.popType[pop.ID] = pop.Component
	}
	return nil
}

// getComp resolves a (population, member index, segment id) triple to the
// target compartment via the per-cell segment-to-name table.
func (rd *Reader) getComp(popID string, idx int, segID string) (*biophys.Compartment, error) {
	cellType, ok := rd.popType[popID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown population %s", ErrLoad, popID)
	}
	name, ok := rd.segToComp[cellType][segID]
	if !ok {
		return nil, fmt.Errorf("%w: population %s: cell %s has no segment %s", ErrLoad, popID, cellType, segID)
	}
	cell, ok := rd.popCells[popID][idx]
	if !ok {
		return nil, fmt.Errorf("%w: population %s has no member %d", ErrLoad, popID, idx)
	}
	return cell.CompByName(name), nil
}

// parseInputTarget splits an explicit-input target "<pop>[<idx>]" with an
// optional "/<segId>" suffix.
func parseInputTarget(target string) (popID string, idx int, segID string, err error) {
	segID = "0"
	rest := target
	if pre, seg, found := strings.Cut(target, "/"); found {
		rest, segID = pre, seg
	}
	popID, idxStr, found := strings.Cut(rest, "[")
	if !found {
		return "", 0, "", fmt.Errorf("%w: malformed input target %q", ErrLoad, target)
	}
	idxStr, _, found = strings.Cut(idxStr, "]")
	if !found {
		return "", 0, "", fmt.Errorf("%w: malformed input target %q", ErrLoad, target)
	}
	idx, err = strconv.Atoi(idxStr)
	if err != nil {
		return "", 0, "", fmt.Errorf("%w: malformed member index in input target %q", ErrLoad, target)
	}
	return popID, idx, segID, nil
}

// createInputs connects each input source's output to its target
// compartment's injection input, for both explicit inputs and input lists.
func (rd *Reader) createInputs() error {
	for _, ei := range rd.network.ExplicitInputs {
		popID, idx, segID, err := parseInputTarget(ei.Target)
		if err != nil {
			return err
		}
		pg, ok := rd.Lib.Get("inputs/" + ei.Input).(*biophys.PulseGen)
		if !ok {
			return fmt.Errorf("%w: no input source %s for explicit input on %s", ErrMissingPrototype, ei.Input, ei.Target)
		}
		comp, err := rd.getComp(popID, idx, segID)
		if err != nil {
			return err
		}
		rd.connectInject(pg, comp)
	}
	for _, il := range rd.network.InputLists {
		pg, ok := rd.Lib.Get("inputs/" + il.Component).(*biophys.PulseGen)
		if !ok {
			return fmt.Errorf("%w: no input source %s for input list %s", ErrMissingPrototype, il.Component, il.ID)
		}
		for _, in := range il.Inputs {
			segID := in.Segment
			if segID == "" {
				segID = "0"
			}
			comp, err := rd.getComp(il.Population, in.TargetCell, segID)
			if err != nil {
				return err
			}
			rd.connectInject(pg, comp)
		}
	}
	return nil
}

// connectInject wires pg into comp once -- re-import does not duplicate the
// connection.
func (rd *Reader) connectInject(pg *biophys.PulseGen, comp *biophys.Compartment) {
	for _, ex := range comp.Injectors {
		if ex == pg {
			return
		}
	}
	comp.ConnectInject(pg)
}
