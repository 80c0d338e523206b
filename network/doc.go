// Package network implements the authoritative Network topology and its
// read-only NetworkView exclusion overlay, regex/attribute node-group
// selection, and the working-graph builder that materializes a
// digraph.Graph for analysis.
package network
