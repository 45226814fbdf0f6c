// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package biophys

// PulseGen generates current pulses for injection into compartments.
// It supports two pulses; single-pulse inputs park the second pulse far in
// the future (SecondDelay = 1e9 s).
type PulseGen struct {
	Name        string  `desc:"input source id"`
	BaseLevel   float64 `desc:"output level outside any pulse (A)"`
	FirstDelay  float64 `desc:"delay before the first pulse (s)"`
	FirstWidth  float64 `desc:"duration of the first pulse (s)"`
	FirstLevel  float64 `desc:"amplitude of the first pulse (A)"`
	SecondDelay float64 `desc:"delay from the end of the first pulse to the second (s)"`
	SecondWidth float64 `desc:"duration of the second pulse (s)"`
	SecondLevel float64 `desc:"amplitude of the second pulse (A)"`
	TrigMode    int     `desc:"trigger mode: 0 = free run"`
}

// NewPulseGen returns a new pulse generator with defaults set.
func NewPulseGen(name string) *PulseGen {
	pg := &PulseGen{Name: name}
	pg.Defaults()
	return pg
}

// Defaults sets default parameter values: free-running with the second
// pulse parked at 1e9 s.
func (pg *PulseGen) Defaults() {
	pg.BaseLevel = 0
	pg.SecondDelay = 1e9
	pg.TrigMode = 0
}

// Output returns the free-run output level at time t.
func (pg *PulseGen) Output(t float64) float64 {
	if t >= pg.FirstDelay && t < pg.FirstDelay+pg.FirstWidth {
		return pg.FirstLevel
	}
	t2 := pg.FirstDelay + pg.FirstWidth + pg.SecondDelay
	if t >= t2 && t < t2+pg.SecondWidth {
		return pg.SecondLevel
	}
	return pg.BaseLevel
}

// Clone returns a copy of the pulse generator under a new name.
func (pg *PulseGen) Clone(name string) *PulseGen {
	np := &PulseGen{}
	*np = *pg
	np.Name = name
	return np
}
