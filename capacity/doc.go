// Package capacity implements calc_graph_capacity : blocking-flow
// computation of the total feasible flow and per-edge forward fractions
// over an SPF predecessor DAG, under PROPORTIONAL or EQUAL_BALANCED
// placement.
package capacity
