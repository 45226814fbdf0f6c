// Copyright (c) 2025, The MOOSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nml2

import "errors"

// Sentinel errors for the failure modes of a Read.  All are fatal to the
// current read call -- the returned error wraps one of these (test with
// errors.Is) and names the offending id.  The sole recoverable condition, an
// unregistered concentration-model id on a species binding, logs a warning
// and skips that binding instead of failing.
var (
	// ErrLoad is a malformed or inconsistent description document
	ErrLoad = errors.New("load error")

	// ErrMissingProximalPoint is a segment with neither a declared proximal
	// point nor a parent to inherit one from
	ErrMissingProximalPoint = errors.New("missing proximal point")

	// ErrTooManyGates is a channel declaring more than three gates
	ErrTooManyGates = errors.New("too many gates")

	// ErrUnknownRateScheme is a rate scheme that is neither a built-in
	// closed form nor a declared component type
	ErrUnknownRateScheme = errors.New("unknown rate scheme")

	// ErrMissingPrototype is a reference to a channel, pool or cell
	// prototype absent from the local and included caches
	ErrMissingPrototype = errors.New("missing prototype")

	// ErrSingularRate is a division by zero while deriving tau/inf from
	// alpha/beta, or a zero time constant, at some grid point
	ErrSingularRate = errors.New("singular rate at grid point")
)
