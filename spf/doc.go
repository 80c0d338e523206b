// Package spf implements the SPF (shortest-path-first) algorithm with
// pluggable edge selection and multipath predecessor recording, plus
// Yen-style k-shortest-paths and predecessor-DAG path resolution.
//
// The core runner uses a container/heap binary min-heap, lazy
// decrease-key (push duplicates, skip stale pops via a visited set), and
// carries algorithm state through init/process/relax phases.
package spf
