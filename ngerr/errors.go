// Package ngerr declares the shared error-kind sentinels used across every
// NetGraph package (digraph, network, spf, capacity, maxflow, flowpolicy,
// demand, failure). Each package wraps one of these sentinels with its own
// method-name and argument context via fmt.Errorf("%w: ...", ngerr.ErrX);
// callers branch on kind with errors.Is, never on message text.
//
// Error policy (explicit and strict):
//   - Only sentinel variables are exposed at this layer.
//   - Sentinels are never wrapped with formatted strings at definition site.
//   - Packages attach context with %w wrapping at the call site.
//   - Algorithms do not panic at runtime, and option constructors do not
//     validate or panic either (WithMinFlowCount(0) is stored as given).
package ngerr

import "errors"

// ErrUnknownEntity indicates a referenced node, edge, or other identity is
// absent from the owning collection.
var ErrUnknownEntity = errors.New("unknown entity")

// ErrDuplicateEntity indicates an attempted re-addition of an existing node
// or reuse of an edge id.
var ErrDuplicateEntity = errors.New("duplicate entity")

// ErrInvalidArgument indicates a structurally invalid argument: inconsistent
// Monte-Carlo parameters, an unknown flow-placement preset, src==dst in a
// capacity computation, an invalid regular expression, and similar.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoMatch indicates a selection expression matched zero entities.
var ErrNoMatch = errors.New("no match")
