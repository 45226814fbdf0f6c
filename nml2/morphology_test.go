// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/subhacom/moose-core/biophys"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = 1.0e-9

func CmprFloats(got, trg []float64, msg string, t *testing.T) {
	t.Helper()
	for i := range got {
		dif := math.Abs(got[i] - trg[i])
		if dif > difTol*math.Max(1, math.Abs(trg[i])) { // allow for small numerical diffs
			t.Errorf("%v err: idx: %v, got: %v, trg: %v, dif: %v\n", msg, i, got[i], trg[i], dif)
		}
	}
}

// mkTwoSegCell is the standard two-segment test cell: a 10x5 um root soma
// and a 20x3 um dendrite whose proximal point coincides with the soma's
// distal point.
func mkTwoSegCell() *Cell {
	return &Cell{
		ID: "cell0",
		Morphology: &Morphology{
			Segments: []*Segment{
				{ID: "0", Name: "soma", Proximal: &Point{0, 0, 0, 5}, Distal: &Point{10, 0, 0, 5}},
				{ID: "1", Name: "dend", Parent: "0", Proximal: &Point{10, 0, 0, 3}, Distal: &Point{30, 0, 0, 3}},
			},
			SegmentGroups: []*SegmentGroup{
				{ID: "soma_group", Members: []string{"0"}},
				{ID: "dendrite_group", Members: []string{"1"}},
			},
		},
	}
}

func TestTwoSegmentCell(t *testing.T) {
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	doc := &Document{Cells: []*Cell{mkTwoSegCell()}}
	if err := rd.Read(doc); err != nil {
		t.Fatal(err)
	}
	nrn := rd.CellProto("cell0")
	if nrn == nil {
		t.Fatal("no cell prototype cell0")
	}
	if len(nrn.Comps) != 2 {
		t.Fatalf("morph err: ncomps got: %v, trg: 2\n", len(nrn.Comps))
	}
	soma := nrn.CompByName("soma")
	dend := nrn.CompByName("dend")
	CmprFloats(
		[]float64{soma.Length, soma.Dia, dend.Length, dend.Dia},
		[]float64{10e-6, 5e-6, 20e-6, 3e-6}, "two-seg geometry", t)
	// child's proximal position equals root's distal position
	CmprFloats(
		[]float64{dend.X0, dend.Y0, dend.Z0},
		[]float64{soma.X, soma.Y, soma.Z}, "dend proximal == soma distal", t)
	// one axial link child -> root
	if nrn.NAxialLinks() != 1 {
		t.Errorf("morph err: axial links got: %v, trg: 1\n", nrn.NAxialLinks())
	}
	if dend.Parent != soma {
		t.Errorf("morph err: dend parent not soma\n")
	}
	// symmetric by default
	if dend.SrcSlot != "proximal" || dend.DstSlot != "distal" {
		t.Errorf("morph err: symmetric link slots got: %v/%v\n", dend.SrcSlot, dend.DstSlot)
	}
}

func TestDuplicateSegmentName(t *testing.T) {
	// two segments declaring the same name merge into one compartment,
	// like repeated ids resolving to one element in the model tree
	cell := mkTwoSegCell()
	cell.Morphology.Segments[1].Name = "soma"
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	if err := rd.Read(&Document{Cells: []*Cell{cell}}); err != nil {
		t.Fatal(err)
	}
	nrn := rd.CellProto("cell0")
	if len(nrn.Comps) != 1 {
		t.Fatalf("merge err: ncomps got: %v, trg: 1\n", len(nrn.Comps))
	}
	soma := nrn.CompByName("soma")
	if nrn.SegComps["0"] != soma || nrn.SegComps["1"] != soma {
		t.Errorf("merge err: segment ids 0,1 do not share the soma compartment\n")
	}
	// last declared segment sets the geometry
	CmprFloats(
		[]float64{soma.Length, soma.Dia},
		[]float64{20e-6, 3e-6}, "merged geometry", t)
	// a segment merged into its parent gets no axial link
	if nrn.NAxialLinks() != 0 {
		t.Errorf("merge err: axial links got: %v, trg: 0\n", nrn.NAxialLinks())
	}
	if soma.Parent != nil {
		t.Errorf("merge err: merged compartment has a parent\n")
	}
	// clones keep both segment ids on the shared compartment
	cln := nrn.Clone("cell0_0")
	if cln.SegComps["0"] == nil || cln.SegComps["0"] != cln.SegComps["1"] {
		t.Errorf("merge err: clone does not share the compartment across segment ids\n")
	}
}

func TestAsymmetricLinkNaming(t *testing.T) {
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	rd.Symmetric = false
	if err := rd.Read(&Document{Cells: []*Cell{mkTwoSegCell()}}); err != nil {
		t.Fatal(err)
	}
	dend := rd.CellProto("cell0").CompByName("dend")
	if dend.SrcSlot != "axial" || dend.DstSlot != "raxial" {
		t.Errorf("morph err: asymmetric link slots got: %v/%v\n", dend.SrcSlot, dend.DstSlot)
	}
}

func TestProximalInheritance(t *testing.T) {
	cell := mkTwoSegCell()
	// drop the declared proximal point: it must inherit the parent's
	// distal point, including its diameter for the average
	cell.Morphology.Segments[1].Proximal = nil
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	if err := rd.Read(&Document{Cells: []*Cell{cell}}); err != nil {
		t.Fatal(err)
	}
	nrn := rd.CellProto("cell0")
	dend := nrn.CompByName("dend")
	soma := nrn.CompByName("soma")
	CmprFloats(
		[]float64{dend.X0, dend.Y0, dend.Z0, dend.Dia},
		[]float64{soma.X, soma.Y, soma.Z, (5 + 3) * 1e-6 / 2}, "inherited proximal", t)
}

func TestMissingProximalPoint(t *testing.T) {
	cell := mkTwoSegCell()
	cell.Morphology.Segments[0].Proximal = nil // root with no proximal
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	err := rd.Read(&Document{Cells: []*Cell{cell}})
	if !errors.Is(err, ErrMissingProximalPoint) {
		t.Errorf("morph err: expected ErrMissingProximalPoint, got: %v\n", err)
	}
}

func TestTreeProperty(t *testing.T) {
	// chain of 5 segments, anonymous apart from the root
	segs := []*Segment{{ID: "0", Name: "soma", Proximal: &Point{0, 0, 0, 10}, Distal: &Point{10, 0, 0, 10}}}
	for i := 1; i < 5; i++ {
		segs = append(segs, &Segment{
			ID:     strconv.Itoa(i),
			Parent: strconv.Itoa(i - 1),
			Distal: &Point{float64(10 * (i + 1)), 0, 0, 2},
		})
	}
	cell := &Cell{ID: "chain", Morphology: &Morphology{Segments: segs}}
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	if err := rd.Read(&Document{Cells: []*Cell{cell}}); err != nil {
		t.Fatal(err)
	}
	nrn := rd.CellProto("chain")
	if len(nrn.Comps) != 5 {
		t.Errorf("tree err: ncomps got: %v, trg: 5\n", len(nrn.Comps))
	}
	if nrn.NAxialLinks() != 4 {
		t.Errorf("tree err: axial links got: %v, trg: 4\n", nrn.NAxialLinks())
	}
	// generated fallback names for anonymous segments
	if nrn.CompByName("comp_1") == nil {
		t.Errorf("tree err: no generated compartment name comp_1\n")
	}
}

func TestGroupResolution(t *testing.T) {
	cell := &Cell{
		ID: "grpcell",
		Morphology: &Morphology{
			Segments: []*Segment{
				{ID: "0", Name: "soma", Proximal: &Point{0, 0, 0, 10}, Distal: &Point{10, 0, 0, 10}},
				{ID: "1", Name: "d1", Parent: "0", Distal: &Point{20, 0, 0, 3}},
				{ID: "2", Name: "d2", Parent: "1", Distal: &Point{30, 0, 0, 3}},
				{ID: "3", Name: "d3", Parent: "2", Distal: &Point{40, 0, 0, 3}},
			},
			SegmentGroups: []*SegmentGroup{
				{ID: "proximal_dends", Members: []string{"1", "2"}},
				{ID: "distal_dends", Members: []string{"2", "3"}},
				// overlapping includes: each segment exactly once, first-seen order
				{ID: "dendrites", Includes: []string{"proximal_dends", "distal_dends"}},
				{ID: "everything", Members: []string{"0"}, Includes: []string{"dendrites"}},
			},
		},
	}
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	if err := rd.Read(&Document{Cells: []*Cell{cell}}); err != nil {
		t.Fatal(err)
	}
	groups := rd.CellProto("grpcell").Groups
	cmpStrs(t, groups["dendrites"], []string{"1", "2", "3"}, "transitive dedup")
	cmpStrs(t, groups["everything"], []string{"0", "1", "2", "3"}, "members before includes")
	// "all" synthesized in declaration order
	cmpStrs(t, groups["all"], []string{"0", "1", "2", "3"}, "synthesized all")
}

func TestGroupIncludeCycle(t *testing.T) {
	cell := mkTwoSegCell()
	cell.Morphology.SegmentGroups = []*SegmentGroup{
		{ID: "a", Includes: []string{"b"}},
		{ID: "b", Includes: []string{"a"}},
	}
	lib := biophys.NewLibrary("library")
	rd := NewReader(lib)
	err := rd.Read(&Document{Cells: []*Cell{cell}})
	if !errors.Is(err, ErrLoad) {
		t.Errorf("group err: expected ErrLoad for include cycle, got: %v\n", err)
	}
}

func cmpStrs(t *testing.T, got, trg []string, msg string) {
	t.Helper()
	if len(got) != len(trg) {
		t.Errorf("%v err: got: %v, trg: %v\n", msg, got, trg)
		return
	}
	for i := range got {
		if got[i] != trg[i] {
			t.Errorf("%v err: idx %v got: %v, trg: %v\n", msg, i, got, trg)
			return
		}
	}
}
