// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package moosecore is the overall repository for the Go implementation of the
MOOSE declarative model translation pipeline: it turns NeuroML2-style model
descriptions (morphological segments, ion-channel kinetics, calcium pools,
network populations) into the in-memory compartmental-model object graph
executed by a separate numerical engine.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* units: conversion of quantity strings ("-65mV", "0.5 mS_per_cm2") into
SI base unit numbers.

* hhfit: the closed-form Hodgkin-Huxley rate functions (exponential, sigmoid,
exponential-linear) used to fill gate kinetics lookup tables.

* biophys: the engine object model -- Compartment, Neuron, HHGate, HHGateF,
HHChannel, Leakage, CaConc, PulseGen -- and the Library container that roots
the instantiated object graph at stable paths.

* lems: minimal generic component-type definitions and an expression-backed
evaluator for researcher-defined rate schemes outside the built-in closed
forms.

* nml2: the descriptor document model and the Reader that translates a
document into biophys prototypes, cell morphologies, biophysics bindings,
and network populations.

* examples: these compile into runnable programs.  examples/gateplot plots
the gating tables of a built ion channel and is the place to start for
inspecting channel kinetics.
*/
package moosecore
