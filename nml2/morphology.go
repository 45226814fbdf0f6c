// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import (
	"fmt"

	"github.com/subhacom/moose-core/biophys"
)

// createMorphology builds the compartments of nrn from the cell's segment
// tree: one compartment per segment, positions scaled by LUnit, a proximal
// point inherited from the parent's distal point when missing, and an axial
// link from every non-root compartment to its parent.  Segment groups are
// fully resolved here, before any biophysics import for the cell runs.
func (rd *Reader) createMorphology(cell *Cell, nrn *biophys.Neuron) error {
	morph := cell.Morphology
	if morph == nil {
		return fmt.Errorf("%w: cell %s has no morphology", ErrLoad, cell.ID)
	}
	idToSeg := make(map[string]*Segment, len(morph.Segments))
	for _, seg := range morph.Segments {
		if _, dup := idToSeg[seg.ID]; dup {
			return fmt.Errorf("%w: cell %s: duplicate segment id %s", ErrLoad, cell.ID, seg.ID)
		}
		idToSeg[seg.ID] = seg
	}

	// segment names are used as compartment names, with a generated
	// fallback for anonymous segments
	segToName := make(map[string]string, len(morph.Segments))
	rd.segToComp[cell.ID] = segToName
	for _, seg := range morph.Segments {
		name := seg.Name
		if name == "" {
			name = "comp_" + seg.ID
		}
		segToName[seg.ID] = name
		if ex := nrn.CompMap[name]; ex != nil {
			// re-import, or several segments declaring one name: both
			// reuse the existing compartment for this segment id
			nrn.SegComps[seg.ID] = ex
			continue
		}
		nrn.AddComp(biophys.NewCompartment(name), seg.ID)
	}

	// endpoint names for the axial link
	src, dst := "axial", "raxial"
	if rd.Symmetric {
		src, dst = "proximal", "distal"
	}

	for _, seg := range morph.Segments {
		comp := nrn.SegComps[seg.ID]
		var parent *Segment
		if seg.Parent != "" {
			parent = idToSeg[seg.Parent]
			if parent == nil {
				return fmt.Errorf("%w: cell %s: segment %s references unknown parent %s", ErrLoad, cell.ID, seg.ID, seg.Parent)
			}
		}
		p0 := seg.Proximal
		if p0 == nil {
			if parent == nil {
				return fmt.Errorf("%w: segment name=%s, id=%s in cell %s", ErrMissingProximalPoint, seg.Name, seg.ID, cell.ID)
			}
			p0 = parent.Distal
		}
		p1 := seg.Distal
		if p1 == nil {
			return fmt.Errorf("%w: cell %s: segment %s has no distal point", ErrLoad, cell.ID, seg.ID)
		}
		lu := rd.LUnit
		comp.SetEndpoints(p0.X*lu, p0.Y*lu, p0.Z*lu, p1.X*lu, p1.Y*lu, p1.Z*lu)
		// averaging the endpoint diameters is an intentional modeling
		// simplification -- downstream numerics depend on it
		comp.Dia = (p0.Dia + p1.Dia) * lu / 2
		if parent != nil {
			if pc := nrn.SegComps[parent.ID]; pc != comp {
				// segments merged under one name never link to themselves
				comp.ConnectAxial(pc, src, dst)
			}
		}
	}

	groups, err := rd.resolveGroups(cell, morph)
	if err != nil {
		return err
	}
	rd.cellGroups[cell.ID] = groups
	nrn.Groups = groups
	return nil
}

// resolveGroups flattens the segment groups of the morphology: members
// first, then transitively included groups, de-duplicated in first-seen
// order.  "all" is synthesized from the declared segment order if absent.
func (rd *Reader) resolveGroups(cell *Cell, morph *Morphology) (map[string][]string, error) {
	byID := make(map[string]*SegmentGroup, len(morph.SegmentGroups))
	for _, sg := range morph.SegmentGroups {
		byID[sg.ID] = sg
	}
	resolved := make(map[string][]string, len(morph.SegmentGroups)+1)

	var resolve func(sg *SegmentGroup, onPath map[string]bool) ([]string, error)
	resolve = func(sg *SegmentGroup, onPath map[string]bool) ([]string, error) {
		if segs, done := resolved[sg.ID]; done {
			return segs, nil
		}
		if onPath[sg.ID] {
			return nil, fmt.Errorf("%w: cell %s: segment group include cycle at %s", ErrLoad, cell.ID, sg.ID)
		}
		onPath[sg.ID] = true
		var segs []string
		seen := make(map[string]bool)
		add := func(sid string) {
			if !seen[sid] {
				seen[sid] = true
				segs = append(segs, sid)
			}
		}
		for _, sid := range sg.Members {
			add(sid)
		}
		for _, incID := range sg.Includes {
			inc := byID[incID]
			if inc == nil {
				return nil, fmt.Errorf("%w: cell %s: group %s includes unknown group %s", ErrLoad, cell.ID, sg.ID, incID)
			}
			isegs, err := resolve(inc, onPath)
			if err != nil {
				return nil, err
			}
			for _, sid := range isegs {
				add(sid)
			}
		}
		delete(onPath, sg.ID)
		resolved[sg.ID] = segs
		return segs, nil
	}

	for _, sg := range morph.SegmentGroups {
		if _, err := resolve(sg, make(map[string]bool)); err != nil {
			return nil, err
		}
	}
	if _, ok := resolved["all"]; !ok {
		all := make([]string, len(morph.Segments))
		for i, seg := range morph.Segments {
			all[i] = seg.ID
		}
		resolved["all"] = all
	}
	return resolved, nil
}
