// Package digraph implements StrictMultiDiGraph, the directed multigraph
// that backs every analysis algorithm in this module: nodes keyed by name,
// edges keyed by a monotonically increasing int64 id, per-edge cost and
// capacity, and running flow bookkeeping keyed by FlowIndex.
//
// It is a deliberately small, strict primitive rather than a general graph
// library: callers that want idempotent upserts or lazily-materialized
// nodes should build that behavior on top (see package network), not
// expect it here.
package digraph
