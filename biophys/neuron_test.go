// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import "testing"

func mkTestNeuron() *Neuron {
	nr := NewNeuron("cell0")
	soma := NewCompartment("soma")
	soma.Dia = 10e-6
	soma.Cm = 1e-12
	dend := NewCompartment("dend")
	dend.Dia = 3e-6
	dend.ConnectAxial(soma, "axial", "raxial")
	ch := NewHHChannel("na")
	ch.SetGate("X", NewHHGate(-0.1, 0.05, 10), 3, "m")
	soma.ConnectChannel(ch)
	ca := NewCaConc("capool")
	dend.ConnectPool(ca)
	nr.AddComp(soma, "0")
	nr.AddComp(dend, "1")
	nr.Groups["all"] = []string{"0", "1"}
	return nr
}

func TestNeuronClone(t *testing.T) {
	nr := mkTestNeuron()
	cl := nr.Clone("clone0")

	if len(cl.Comps) != len(nr.Comps) {
		t.Fatalf("clone err: ncomps got: %v, trg: %v\n", len(cl.Comps), len(nr.Comps))
	}
	for i, cm := range cl.Comps {
		if cm == nr.Comps[i] {
			t.Errorf("clone err: comp %v shared with prototype\n", cm.Name)
		}
		if cm.Name != nr.Comps[i].Name {
			t.Errorf("clone err: comp name got: %v, trg: %v\n", cm.Name, nr.Comps[i].Name)
		}
	}
	// axial link re-targeted to the cloned parent
	if cl.CompMap["dend"].Parent != cl.CompMap["soma"] {
		t.Errorf("clone err: dend parent not re-linked to cloned soma\n")
	}
	if cl.CompMap["dend"].SrcSlot != "axial" || cl.CompMap["dend"].DstSlot != "raxial" {
		t.Errorf("clone err: link slots not preserved\n")
	}
	// segment table points at the cloned compartments
	if cl.SegComps["0"] != cl.CompMap["soma"] {
		t.Errorf("clone err: segment table not rebuilt\n")
	}
	// channels and pools deep-copied
	if cl.CompMap["soma"].Channels[0] == nr.CompMap["soma"].Channels[0] {
		t.Errorf("clone err: channel shared with prototype\n")
	}
	if cl.CompMap["dend"].Pools[0] == nr.CompMap["dend"].Pools[0] {
		t.Errorf("clone err: pool shared with prototype\n")
	}

	// independently mutable
	cl.CompMap["soma"].Cm = 99
	if nr.CompMap["soma"].Cm == 99 {
		t.Errorf("clone err: mutating clone changed prototype\n")
	}
	if nr.NAxialLinks() != 1 || cl.NAxialLinks() != 1 {
		t.Errorf("clone err: axial links got: %v / %v, trg: 1 / 1\n", nr.NAxialLinks(), cl.NAxialLinks())
	}
}

func TestHHChannelClonePathRewrite(t *testing.T) {
	ch := NewHHChannel("kdr")
	ch.SetGate("X", NewHHGate(-0.15, 0.1, 100), 4, "n")
	if ch.GatePaths["kdr/n"] != "kdr/X" {
		t.Fatalf("gatepaths err: got: %v\n", ch.GatePaths)
	}
	cl := ch.Clone("kdrDens")
	if cl.GatePaths["kdrDens/n"] != "kdrDens/X" {
		t.Errorf("gatepaths err: clone not rewritten: %v\n", cl.GatePaths)
	}
	if _, ok := cl.GatePaths["kdr/n"]; ok {
		t.Errorf("gatepaths err: clone retains prototype path: %v\n", cl.GatePaths)
	}
	// gates are shared read-only
	if cl.GateX != ch.GateX {
		t.Errorf("clone err: gate tables not shared\n")
	}
}
