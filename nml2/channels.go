// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/subhacom/moose-core/biophys"
	"github.com/subhacom/moose-core/hhfit"
	"github.com/subhacom/moose-core/units"
	"gonum.org/v1/gonum/floats"
)

// CaConcMax is the upper bound of the calcium-concentration grid for
// concentration-dependent rate schemes.  Intracellular [Ca2+] sits around
// 50-100 nM at rest and rises up to ~100x during electrical activity, so
// 1e-4 M is a safe ceiling (Grienberger & Konnerth, 2012, Neuron).
const CaConcMax = 1e-4

// caConcFloor is the lower bound of the concentration grid: effectively
// zero but strictly positive, so concentration-dependent expressions with
// log or division terms stay finite.
const caConcFloor = 1e-12

// closed-form rate schemes, computed directly from (v, rate, scale, midpoint)
var rateFnMap = map[string]func(v, rate, scale, midpoint float64) float64{
	"HHExpRate":         hhfit.Exponential,
	"HHSigmoidRate":     hhfit.Sigmoid,
	"HHSigmoidVariable": hhfit.SigmoidVariable,
	"HHExpLinearRate":   hhfit.ExpLinear,
}

// gate axes in order
var gateAxes = [3]string{"X", "Y", "Z"}

// importIonChannels builds a prototype at <library>/<channelId> for every
// declared ion channel: an HHChannel with derived gate tables for active
// channels, a Leakage for passive (zero-gate) ones.
func (rd *Reader) importIonChannels(doc *Document) error {
	for _, ch := range doc.IonChannels {
		var proto any
		var err error
		if rd.isPassive(ch) {
			proto = rd.createPassiveChannel(ch)
		} else {
			proto, err = rd.createHHChannel(ch)
			if err != nil {
				return err
			}
		}
		rd.chanDescs[ch.ID] = ch
		rd.protoChans[ch.ID] = proto
		if rd.Verbose {
			log.Printf("created ion channel %s (%s)", ch.ID, ch.Type)
		}
	}
	return nil
}

// isPassive reports whether the channel is passive: explicitly typed so, or
// declaring no gates.  Passive channels never become standalone compartment
// objects -- density import adjusts compartment Rm/Em directly.
func (rd *Reader) isPassive(ch *IonChannel) bool {
	if ch.Type == "ionChannelPassive" {
		return true
	}
	return ch.NumGates() == 0
}

func (rd *Reader) createPassiveChannel(ch *IonChannel) *biophys.Leakage {
	return rd.Lib.GetOrAdd(ch.ID, func() any { return biophys.NewLeakage(ch.ID) }).(*biophys.Leakage)
}

// gatesSorted orders the declared gates onto the X/Y/Z axes.  If the gate
// ids are a subset of {x, y, z} (case-insensitive) they map by name, with
// holes for missing axes; otherwise they map positionally in declaration
// order.
func gatesSorted(gates []*Gate) [3]*Gate {
	var sorted [3]*Gate
	byName := make(map[string]*Gate, len(gates))
	conventional := true
	for _, g := range gates {
		id := strings.ToLower(g.ID)
		if id != "x" && id != "y" && id != "z" {
			conventional = false
			break
		}
		byName[id] = g
	}
	if conventional {
		sorted[0], sorted[1], sorted[2] = byName["x"], byName["y"], byName["z"]
		return sorted
	}
	copy(sorted[:], gates)
	return sorted
}

// createHHChannel builds (or reuses) the channel prototype and computes
// every gate's lookup tables over the configured voltage grid.
func (rd *Reader) createHHChannel(ch *IonChannel) (*biophys.HHChannel, error) {
	if ch.NumGates() > 3 {
		return nil, fmt.Errorf("%w: channel %s declares %d gates", ErrTooManyGates, ch.ID, ch.NumGates())
	}
	mchan := rd.Lib.GetOrAdd(ch.ID, func() any { return biophys.NewHHChannel(ch.ID) }).(*biophys.HHChannel)

	vtab := make([]float64, rd.VDivs+1)
	floats.Span(vtab, rd.VMin, rd.VMax)

	for gi, ngate := range gatesSorted(ch.Gates) {
		if ngate == nil {
			continue
		}
		tau, inf, err := rd.gateTauInf(ch, ngate, vtab)
		if err != nil {
			return nil, err
		}
		q10, err := rd.q10Scale(ch, ngate)
		if err != nil {
			return nil, err
		}
		tableA := make([]float64, len(vtab))
		tableB := make([]float64, len(vtab))
		for i := range vtab {
			tau[i] /= q10
			if tau[i] == 0 {
				return nil, fmt.Errorf("%w: channel %s gate %s: zero time constant at index %d (v=%g)", ErrSingularRate, ch.ID, ngate.ID, i, vtab[i])
			}
			tableA[i] = inf[i] / tau[i]
			tableB[i] = 1 / tau[i]
		}
		gate := biophys.NewHHGate(rd.VMin, rd.VMax, rd.VDivs)
		gate.SetTables(tableA, tableB)
		mchan.SetGate(gateAxes[gi], gate, ngate.Instances, ngate.ID)
	}
	return mchan, nil
}

// gateTauInf computes the gate's time constant and steady state at every
// grid point.  The standard path derives tau = 1/(alpha+beta) and
// inf = alpha/(alpha+beta) from the forward/reverse rates; extended gate
// types then replace tau and/or inf from their own schemes, leaving the
// other quantity derived.
func (rd *Reader) gateTauInf(ch *IonChannel, ngate *Gate, vtab []float64) (tau, inf []float64, err error) {
	var alpha, beta []float64
	if ngate.ForwardRate != nil {
		if alpha, err = rd.calculateRateFn(ch, ngate, ngate.ForwardRate, vtab, nil); err != nil {
			return nil, nil, err
		}
	}
	if ngate.ReverseRate != nil {
		if beta, err = rd.calculateRateFn(ch, ngate, ngate.ReverseRate, vtab, nil); err != nil {
			return nil, nil, err
		}
	}
	if alpha != nil && beta != nil {
		tau = make([]float64, len(vtab))
		inf = make([]float64, len(vtab))
		for i := range vtab {
			ab := alpha[i] + beta[i]
			if ab == 0 {
				return nil, nil, fmt.Errorf("%w: channel %s gate %s: alpha+beta is zero at index %d (v=%g)", ErrSingularRate, ch.ID, ngate.ID, i, vtab[i])
			}
			tau[i] = 1 / ab
			inf[i] = alpha[i] / ab
		}
	}

	// extended gate types tweak tau and/or inf from their own schemes;
	// gateHHtauInf carries both directly with no alpha/beta at all
	arrays := map[string][]float64{"v": vtab}
	if alpha != nil {
		arrays["alpha"] = alpha
	}
	if beta != nil {
		arrays["beta"] = beta
	}
	if ngate.TimeCourse != nil {
		if tau, err = rd.calculateRateFn(ch, ngate, ngate.TimeCourse, vtab, arrays); err != nil {
			return nil, nil, err
		}
	}
	if ngate.SteadyState != nil {
		if inf, err = rd.calculateRateFn(ch, ngate, ngate.SteadyState, vtab, arrays); err != nil {
			return nil, nil, err
		}
	}
	if tau == nil || inf == nil {
		return nil, nil, fmt.Errorf("%w: channel %s gate %s defines no usable rate scheme", ErrLoad, ch.ID, ngate.ID)
	}
	return tau, inf, nil
}

// calculateRateFn evaluates one rate scheme over the voltage grid: the four
// built-in closed forms compute directly, anything else delegates to the
// generic component evaluator.  arrays optionally carries additional
// per-grid-point variables (alpha, beta) for extended schemes.
func (rd *Reader) calculateRateFn(ch *IonChannel, ngate *Gate, rs *RateSpec, vtab []float64, arrays map[string][]float64) ([]float64, error) {
	if fn, ok := rateFnMap[rs.Type]; ok {
		rate, err := units.SI(rs.Rate)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %s gate %s rate: %v", ErrLoad, ch.ID, ngate.ID, err)
		}
		scale, err := units.SI(rs.Scale)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %s gate %s scale: %v", ErrLoad, ch.ID, ngate.ID, err)
		}
		midpoint, err := units.SI(rs.Midpoint)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %s gate %s midpoint: %v", ErrLoad, ch.ID, ngate.ID, err)
		}
		out := make([]float64, len(vtab))
		for i, v := range vtab {
			out[i] = fn(v, rate, scale, midpoint)
		}
		return out, nil
	}
	if arrays == nil {
		arrays = map[string][]float64{"v": vtab}
	}
	return rd.extendedRateFn(ch, ngate, rs, arrays)
}

// extendedRateFn evaluates a researcher-defined rate scheme: it finds the
// matching component type, picks the produced variable from what the type
// extends ('t' = time constant, 'r' = rate, 'x' = steady state), builds the
// per-grid-point variable binding (adding a calcium-concentration grid for
// concentration-dependent types), and invokes the evaluator once per index.
func (rd *Reader) extendedRateFn(ch *IonChannel, ngate *Gate, rs *RateSpec, arrays map[string][]float64) ([]float64, error) {
	ct := rd.Doc.ComponentType(rs.Type)
	if ct == nil {
		return nil, fmt.Errorf("%w: channel %s gate %s: no component type %q", ErrUnknownRateScheme, ch.ID, ngate.ID, rs.Type)
	}
	var varname string
	switch ct.Extends {
	case "baseVoltageDepTime", "baseVoltageConcDepTime":
		varname = "t"
	case "baseVoltageDepRate", "baseVoltageConcDepRate":
		varname = "r"
	case "baseVoltageDepVariable", "baseVoltageConcDepVariable":
		varname = "x"
	default:
		return nil, fmt.Errorf("%w: channel %s gate %s: component type %s extends unsupported base %q", ErrUnknownRateScheme, ch.ID, ngate.ID, ct.Name, ct.Extends)
	}
	n := len(arrays["v"])
	if strings.Contains(ct.Extends, "ConcDep") {
		if _, ok := arrays["caConc"]; !ok {
			conc := make([]float64, n)
			floats.Span(conc, caConcFloor, CaConcMax)
			arrays["caConc"] = conc
		}
	}

	out := make([]float64, n)
	req := map[string]float64{"vShift": 0, "temperature": rd.temp}
	for i := 0; i < n; i++ {
		for nm, arr := range arrays {
			req[nm] = arr[i]
		}
		vals, err := rd.Eval.Evaluate(ct, req)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %s gate %s: component type %s: %v", ErrLoad, ch.ID, ngate.ID, ct.Name, err)
		}
		val, ok := vals[varname]
		if !ok {
			return nil, fmt.Errorf("%w: channel %s gate %s: component type %s produced no %q", ErrUnknownRateScheme, ch.ID, ngate.ID, ct.Name, varname)
		}
		out[i] = val
	}
	return out, nil
}

// q10Scale computes the temperature scaling factor for a gate's time
// constant: 1 without q10 settings, the fixed constant for q10Fixed, and
// factor^((T_model - T_reference)/10) for q10ExpTemp.
func (rd *Reader) q10Scale(ch *IonChannel, ngate *Gate) (float64, error) {
	q10 := ngate.Q10Settings
	if q10 == nil {
		return 1, nil
	}
	switch q10.Type {
	case "q10Fixed":
		v, err := units.SI(q10.FixedQ10)
		if err != nil {
			return 0, fmt.Errorf("%w: channel %s gate %s fixedQ10: %v", ErrLoad, ch.ID, ngate.ID, err)
		}
		return v, nil
	case "q10ExpTemp":
		factor, err := units.SI(q10.Q10Factor)
		if err != nil {
			return 0, fmt.Errorf("%w: channel %s gate %s q10Factor: %v", ErrLoad, ch.ID, ngate.ID, err)
		}
		expTemp, err := units.SI(q10.ExperimentalTemp)
		if err != nil {
			return 0, fmt.Errorf("%w: channel %s gate %s experimentalTemp: %v", ErrLoad, ch.ID, ngate.ID, err)
		}
		return math.Pow(factor, (rd.temp-expTemp)/10), nil
	default:
		return 0, fmt.Errorf("%w: channel %s gate %s: unknown q10 scaling type %q", ErrLoad, ch.ID, ngate.ID, q10.Type)
	}
}
