// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package biophys implements the engine-side object model for compartmental
neuron simulation: Compartment (the lumped RC element), Neuron (a cell
prototype of linked compartments), HHGate / HHGateF (gate kinetics as lookup
tables or explicit expressions), HHChannel (up to three gates), Leakage
(passive channel), CaConc (decaying calcium pool) and PulseGen (current
injection source).

Prototypes live in a Library, addressed by stable slash-separated paths, and
are cloned to realize population members.  The package knows nothing about
the descriptor document model -- the numerical engine executes these objects
directly.
*/
package biophys
