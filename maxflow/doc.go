// Package maxflow implements calc_max_flow : iterated SPF plus
// blocking-flow augmentation to saturation, FlowSummary/min-cut reporting,
// saturated-edge and sensitivity analysis, and group-level (combine /
// pairwise) pseudo-source/sink wrappers over a NetworkView.
package maxflow
