// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
)

// Library is the container rooting the instantiated object graph.  Objects
// are addressed by slash-separated paths relative to the library root, with
// stable canonical naming: cell / channel / pool prototypes under their id,
// population members under <populationId>/<index>, input sources under
// inputs/<inputId>.  Adding at an occupied path reuses the existing object,
// making re-import idempotent.
type Library struct {
	Name string `desc:"name of the library root"`

	objs  map[string]any
	paths []string
}

// NewLibrary returns a new empty library with the given root name.
func NewLibrary(name string) *Library {
	return &Library{Name: name, objs: make(map[string]any)}
}

// Exists reports whether an object occupies the given path.
func (lb *Library) Exists(path string) bool {
	_, ok := lb.objs[path]
	return ok
}

// Get returns the object at the given path, nil if none.
func (lb *Library) Get(path string) any {
	return lb.objs[path]
}

// GetOrAdd returns the existing object at path, or stores and returns the
// object produced by mk.  mk is not called when the path is occupied.
func (lb *Library) GetOrAdd(path string, mk func() any) any {
	if obj, ok := lb.objs[path]; ok {
		return obj
	}
	obj := mk()
	lb.objs[path] = obj
	lb.paths = append(lb.paths, path)
	return obj
}

// NumObjs returns the number of objects in the library.
func (lb *Library) NumObjs() int {
	return len(lb.objs)
}

// Paths returns all occupied paths in insertion order.
func (lb *Library) Paths() []string {
	return lb.paths
}

// SizeReport returns a string reporting the memory footprint of each object
// in the library -- gate tables dominate for table-form channels.
func (lb *Library) SizeReport() string {
	var b strings.Builder
	tot := 0
	for _, p := range lb.paths {
		mem := 0
		switch obj := lb.objs[p].(type) {
		case *Neuron:
			mem = len(obj.Comps) * int(unsafe.Sizeof(Compartment{}))
			for _, cm := range obj.Comps {
				mem += len(cm.Channels) * int(unsafe.Sizeof(HHChannel{}))
				mem += len(cm.Pools) * int(unsafe.Sizeof(CaConc{}))
			}
		case *HHChannel:
			mem = int(unsafe.Sizeof(HHChannel{}))
			for _, gt := range []*HHGate{obj.GateX, obj.GateY, obj.GateZ} {
				if gt != nil {
					mem += (len(gt.TableA) + len(gt.TableB)) * 8
				}
			}
		case *Leakage:
			mem = int(unsafe.Sizeof(Leakage{}))
		case *CaConc:
			mem = int(unsafe.Sizeof(CaConc{}))
		case *PulseGen:
			mem = int(unsafe.Sizeof(PulseGen{}))
		}
		tot += mem
		fmt.Fprintf(&b, "%14s/%s:\t Mem: %v\n", lb.Name, p, (datasize.ByteSize)(mem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n%14s:\t Objs: %d\t TotalMem: %v\n", lb.Name, len(lb.objs), (datasize.ByteSize)(tot).HumanReadable())
	return b.String()
}
