// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lems holds the minimal generic component-type model needed to
evaluate researcher-defined rate schemes that fall outside the built-in
closed forms: a ComponentType declares constants (with units), required
variables, and derived variables whose values are arithmetic expressions
over both.  The Evaluator computes all derived variables for one sample of
the required variables -- the translation pipeline invokes it once per grid
point when filling gate tables.
*/
package lems

import (
	"fmt"
	"math"

	"github.com/antonmedv/expr"
	"github.com/antonmedv/expr/vm"
	"github.com/subhacom/moose-core/units"
)

// Constant is a named quantity with units, e.g. rate = "1.2 per_ms".
type Constant struct {
	Name  string `desc:"variable name usable in expressions"`
	Value string `desc:"quantity string, converted through units.SI"`
}

// Requirement names a variable the caller must supply per evaluation.
type Requirement struct {
	Name      string `desc:"variable name, e.g. v or caConc"`
	Dimension string `desc:"declared dimension, informational only"`
}

// Case is one branch of a conditional derived variable.  An empty Condition
// marks the default branch.
type Case struct {
	Condition string `desc:"boolean expression selecting this branch, empty = default"`
	Value     string `desc:"value expression for this branch"`
}

// DerivedVariable is a named expression over constants, requirements and
// previously computed derived variables.  Either Value or Cases is set.
type DerivedVariable struct {
	Name  string `desc:"produced variable name, e.g. t, r or x"`
	Value string `desc:"value expression -- empty when Cases is used"`
	Cases []Case `desc:"conditional branches, evaluated in order"`
}

// ComponentType is a generic component-type definition: the external
// evaluator contract takes one of these plus a required-variable sample and
// produces the derived-variable values.
type ComponentType struct {
	Name         string            `desc:"component type name, referenced by rate schemes"`
	Extends      string            `desc:"base type, e.g. baseVoltageDepRate or baseVoltageConcDepTime"`
	Constants    []Constant        `desc:"named constants with units"`
	Requirements []Requirement     `desc:"variables the caller must bind"`
	Derived      []DerivedVariable `desc:"derived variables in evaluation order"`
}

// exprFuncs are the math functions available inside component expressions.
var exprFuncs = map[string]any{
	"exp":  math.Exp,
	"log":  math.Log,
	"pow":  math.Pow,
	"sqrt": math.Sqrt,
	"abs":  math.Abs,
	"tanh": math.Tanh,
}

// Evaluator evaluates component types one required-variable sample at a
// time.  Compiled expressions are cached by source, so sweeping a component
// type over a 5000-point grid compiles each expression once.
type Evaluator struct {
	progs map[string]*vm.Program
}

// NewEvaluator returns a new evaluator with an empty compilation cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{progs: make(map[string]*vm.Program)}
}

func (ev *Evaluator) run(src string, env map[string]any) (any, error) {
	prog, ok := ev.progs[src]
	if !ok {
		var err error
		prog, err = expr.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("cannot compile expression %q: %v", src, err)
		}
		ev.progs[src] = prog
	}
	return expr.Run(prog, env)
}

func (ev *Evaluator) evalFloat(src string, env map[string]any) (float64, error) {
	out, err := ev.run(src, env)
	if err != nil {
		return 0, err
	}
	switch val := out.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	default:
		return 0, fmt.Errorf("expression %q returned non-numeric value %v", src, out)
	}
}

func (ev *Evaluator) evalBool(src string, env map[string]any) (bool, error) {
	out, err := ev.run(src, env)
	if err != nil {
		return false, err
	}
	val, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q returned non-boolean value %v", src, out)
	}
	return val, nil
}

// Evaluate computes all derived variables of ct for one sample of required
// variables, returning produced-variable name to value.  Derived variables
// are evaluated in declaration order and may refer to earlier ones.
func (ev *Evaluator) Evaluate(ct *ComponentType, req map[string]float64) (map[string]float64, error) {
	env := make(map[string]any, len(req)+len(ct.Constants)+len(exprFuncs))
	for nm, fn := range exprFuncs {
		env[nm] = fn
	}
	for nm, v := range req {
		env[nm] = v
	}
	for _, c := range ct.Constants {
		v, err := units.SI(c.Value)
		if err != nil {
			return nil, fmt.Errorf("component type %s: constant %s: %w", ct.Name, c.Name, err)
		}
		env[c.Name] = v
	}
	for _, rq := range ct.Requirements {
		if _, ok := env[rq.Name]; !ok {
			return nil, fmt.Errorf("component type %s: required variable %s not bound", ct.Name, rq.Name)
		}
	}
	out := make(map[string]float64, len(ct.Derived))
	for _, dv := range ct.Derived {
		var val float64
		var err error
		if len(dv.Cases) > 0 {
			val, err = ev.evalCases(ct, dv, env)
		} else {
			val, err = ev.evalFloat(dv.Value, env)
		}
		if err != nil {
			return nil, fmt.Errorf("component type %s: derived variable %s: %v", ct.Name, dv.Name, err)
		}
		env[dv.Name] = val
		out[dv.Name] = val
	}
	return out, nil
}

func (ev *Evaluator) evalCases(ct *ComponentType, dv DerivedVariable, env map[string]any) (float64, error) {
	for _, cs := range dv.Cases {
		if cs.Condition == "" {
			return ev.evalFloat(cs.Value, env)
		}
		sel, err := ev.evalBool(cs.Condition, env)
		if err != nil {
			return 0, err
		}
		if sel {
			return ev.evalFloat(cs.Value, env)
		}
	}
	return 0, fmt.Errorf("no case matched and no default branch")
}
