// File: expand.go
// Role: Expand (combine/full_mesh expansion modes): deterministic, sorted
// source/sink matching with exact volume splitting for full_mesh and a
// pseudo-source/pseudo-sink pair synthesized on the working graph (not the
// base Network) for combine.
package demand

import (
	"fmt"
	"math"
	"sort"

	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/network"
)

const (
	pseudoSrcPrefix = "__demand_src__:"
	pseudoDstPrefix = "__demand_dst__:"
)

// nodeSelector is satisfied by *network.Network and *network.NetworkView;
// Expand only needs SelectNodeGroupsByPath, so either can supply matches.
type nodeSelector interface {
	SelectNodeGroupsByPath(pattern string) (*network.NodeGroups, error)
}

// Expand matches spec's source/sink selectors against sel and produces the
// concrete Demand(s), adding pseudo-source/pseudo-sink nodes to g for
// Combine mode. g is mutated only by adding the pseudo nodes/edges; no
// pre-existing node, edge, or attribute is touched.
func Expand(g *digraph.Graph, sel nodeSelector, spec TrafficDemandSpec) ([]*Demand, error) {
	srcGroups, err := sel.SelectNodeGroupsByPath(spec.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("demand: source selection: %w", err)
	}
	if srcGroups.Len() == 0 {
		return nil, errNoMatch(spec.SourcePath)
	}
	dstGroups, err := sel.SelectNodeGroupsByPath(spec.SinkPath)
	if err != nil {
		return nil, fmt.Errorf("demand: sink selection: %w", err)
	}
	if dstGroups.Len() == 0 {
		return nil, errNoMatch(spec.SinkPath)
	}

	srcNames := sortedMemberNames(srcGroups)
	dstNames := sortedMemberNames(dstGroups)

	switch spec.Mode {
	case Combine:
		return expandCombine(g, spec, srcNames, dstNames)
	case FullMesh:
		return expandFullMesh(spec, srcNames, dstNames)
	default:
		return nil, fmt.Errorf("demand: %w: unsupported expansion mode %d", ErrInvalidArgument, spec.Mode)
	}
}

func sortedMemberNames(groups *network.NodeGroups) []string {
	var out []string
	for _, label := range groups.Labels() {
		for _, n := range groups.Members(label) {
			out = append(out, n.Name)
		}
	}
	sort.Strings(out)
	return out
}

func expandCombine(g *digraph.Graph, spec TrafficDemandSpec, srcNames, dstNames []string) ([]*Demand, error) {
	pseudoSrc := pseudoSrcPrefix + spec.Name
	pseudoDst := pseudoDstPrefix + spec.Name
	for g.HasNode(pseudoSrc) {
		pseudoSrc += "_"
	}
	for g.HasNode(pseudoDst) {
		pseudoDst += "_"
	}
	if err := g.AddNode(pseudoSrc, nil); err != nil {
		return nil, err
	}
	if err := g.AddNode(pseudoDst, nil); err != nil {
		return nil, err
	}
	for _, n := range srcNames {
		if _, err := g.AddEdge(pseudoSrc, n, -1, 0, math.Inf(1), nil); err != nil {
			return nil, err
		}
	}
	for _, n := range dstNames {
		if _, err := g.AddEdge(n, pseudoDst, -1, 0, math.Inf(1), nil); err != nil {
			return nil, err
		}
	}
	return []*Demand{{
		SpecName: spec.Name,
		Priority: spec.Priority,
		Src:      pseudoSrc,
		Dst:      pseudoDst,
		Class:    spec.Class,
		Volume:   spec.Volume,
		Policy:   spec.newPolicy(),
	}}, nil
}

func expandFullMesh(spec TrafficDemandSpec, srcNames, dstNames []string) ([]*Demand, error) {
	type pair struct{ src, dst string }
	var pairs []pair
	for _, s := range srcNames {
		for _, d := range dstNames {
			if s != d {
				pairs = append(pairs, pair{s, d})
			}
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("demand: %w: full_mesh expansion of %q produced no (src,sink) pairs", ErrNoMatch, spec.Name)
	}

	share := spec.Volume / float64(len(pairs))
	demands := make([]*Demand, 0, len(pairs))
	var allocated float64
	for i, p := range pairs {
		v := share
		if i == len(pairs)-1 {
			// Last share absorbs rounding error so the sum is exact.
			v = spec.Volume - allocated
		} else {
			allocated += v
		}
		demands = append(demands, &Demand{
			SpecName: spec.Name,
			Priority: spec.Priority,
			Src:      p.src,
			Dst:      p.dst,
			Class:    spec.Class,
			Volume:   v,
			Policy:   spec.newPolicy(),
		})
	}
	return demands, nil
}
