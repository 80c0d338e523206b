// File: policy.go
// Role: PlaceDemand/RebalanceDemand/RemoveDemand.
package flowpolicy

import (
	"fmt"

	"github.com/networmix/netgraph-go/capacity"
	"github.com/networmix/netgraph-go/digraph"
	"github.com/networmix/netgraph-go/spf"
)

// PlaceDemand ensures at least the configured minimum flow count exists
// for (src, dst, class), then distributes volume round-robin across the
// policy's flows, each placement bounded by that flow's own bottleneck
// capacity (a single max-flow-style augmentation per flow, per round).
func (p *FlowPolicy) PlaceDemand(g *digraph.Graph, src, dst string, class int, volume float64) (placed, remaining float64, err error) {
	if err := p.bind(src, dst, class); err != nil {
		return 0, volume, err
	}

	if err := p.ensureFlows(g); err != nil {
		return 0, volume, err
	}
	if len(p.flows) == 0 {
		return 0, volume, fmt.Errorf("flowpolicy: %w: no usable path found for (%s,%s)", ErrNoMatch, src, dst)
	}

	remaining = volume
	stagnantRounds := 0
	for remaining > p.cfg.tolerance {
		roundPlaced := 0.0
		for _, flow := range p.flows {
			if remaining <= p.cfg.tolerance {
				break
			}
			amt, perr := p.placeOnFlow(g, flow, remaining)
			if perr != nil {
				return volume - remaining, remaining, perr
			}
			remaining -= amt
			roundPlaced += amt
			if p.cfg.shortestPath {
				break
			}
		}
		if p.cfg.shortestPath {
			break
		}
		if roundPlaced <= p.cfg.tolerance {
			break
		}
		if p.cfg.diminishingReturnsEnabled {
			if roundPlaced < p.cfg.stagnationTolerance {
				stagnantRounds++
			} else {
				stagnantRounds = 0
			}
			if stagnantRounds >= p.cfg.diminishingReturnsIters {
				break
			}
		}
	}

	return volume - remaining, remaining, nil
}

// RebalanceDemand removes the current placement and re-places the
// policy's existing flows up to targetVolume, re-creating each Flow's
// placement from scratch rather than mutating fractional contributions in
// place.
func (p *FlowPolicy) RebalanceDemand(g *digraph.Graph, targetVolume float64) (placed, remaining float64, err error) {
	if !p.bound {
		return 0, targetVolume, fmt.Errorf("flowpolicy: %w: no demand bound yet", ErrInvalidArgument)
	}
	p.RemoveDemand(g)
	return p.PlaceDemand(g, p.src, p.dst, p.class, targetVolume)
}

// RemoveDemand subtracts each flow's contribution from edge.Flow/node.Flow
// and clears this policy's FlowIndex entries from edge.Flows/node.Flows.
// The flow registry itself (path bundles, Flow objects) is left intact.
func (p *FlowPolicy) RemoveDemand(g *digraph.Graph) {
	for _, flow := range p.flows {
		for id, amt := range flow.edgeContrib {
			if e, err := g.GetEdgeData(id); err == nil {
				e.Flow -= amt
				delete(e.Flows, flow.Index)
			}
		}
		for name, amt := range flow.nodeContrib {
			if nd, err := g.GetNodeData(name); err == nil {
				nd.Flow -= amt
				delete(nd.Flows, flow.Index)
			}
		}
		flow.edgeContrib = map[int64]float64{}
		flow.nodeContrib = map[string]float64{}
		flow.PlacedVolume = 0
	}
}

func (p *FlowPolicy) bind(src, dst string, class int) error {
	if !p.bound {
		p.src, p.dst, p.class = src, dst, class
		p.bound = true
		return nil
	}
	if p.src != src || p.dst != dst || p.class != class {
		return fmt.Errorf("flowpolicy: %w: policy already bound to (%s,%s,class=%d)", ErrInvalidArgument, p.src, p.dst, p.class)
	}
	return nil
}

// ensureFlows tops up the registry to cfg.minFlowCount, subject to
// cfg.maxFlowCount.
func (p *FlowPolicy) ensureFlows(g *digraph.Graph) error {
	limit := p.cfg.minFlowCount
	if p.cfg.hasMaxFlowCount && p.cfg.maxFlowCount < limit {
		limit = p.cfg.maxFlowCount
	}
	for len(p.flows) < limit {
		flow, err := p.newFlow(g, len(p.flows))
		if err != nil {
			if len(p.flows) > 0 {
				break // partial registry is acceptable if at least one path exists
			}
			return err
		}
		p.flows = append(p.flows, flow)
	}
	return nil
}

func (p *FlowPolicy) newFlow(g *digraph.Graph, idx int) (*Flow, error) {
	index := digraph.FlowIndex{Src: p.src, Dst: p.dst, FlowClass: p.class, FlowID: p.nextFlowID}

	if idx < len(p.cfg.staticPaths) {
		pred, cost := predFromBundle(p.cfg.staticPaths[idx])
		p.nextFlowID++
		return &Flow{Index: index, Pred: pred, Cost: cost, edgeContrib: map[int64]float64{}, nodeContrib: map[string]float64{}}, nil
	}

	var pred capacity.Pred
	var cost float64

	switch p.cfg.pathAlg {
	case KSPYens:
		kspOpts := []spf.KSPOption{spf.WithMaxK(idx + 1), spf.WithKSPEdgeSelect(p.cfg.edgeSelect)}
		if p.cfg.hasMaxPathCost {
			kspOpts = append(kspOpts, spf.WithMaxPathCost(p.cfg.maxPathCost))
		}
		if p.cfg.hasMaxPathCostFactor {
			kspOpts = append(kspOpts, spf.WithMaxPathCostFactor(p.cfg.maxPathCostFactor))
		}
		results, err := spf.KSP(g, p.src, p.dst, kspOpts...)
		if err != nil {
			return nil, err
		}
		if idx >= len(results) {
			return nil, fmt.Errorf("flowpolicy: %w: only %d path(s) available between %q and %q", ErrNoMatch, len(results), p.src, p.dst)
		}
		pred = capacity.Pred(results[idx].Pred)
		cost = results[idx].Costs[p.dst]

	default:
		spfOpts := []spf.Option{spf.WithEdgeSelect(p.cfg.edgeSelect), spf.WithMultipath(!p.cfg.shortestPath), spf.WithDst(p.dst)}
		res, err := spf.SPF(g, p.src, spfOpts...)
		if err != nil {
			return nil, err
		}
		c, reachable := res.Costs[p.dst]
		if !reachable {
			return nil, fmt.Errorf("flowpolicy: %w: %q unreachable from %q", ErrNoMatch, p.dst, p.src)
		}
		if p.cfg.hasMaxPathCost && c > p.cfg.maxPathCost {
			return nil, fmt.Errorf("flowpolicy: %w: cheapest path cost %v exceeds max_path_cost", ErrNoMatch, c)
		}
		pred = capacity.Pred(res.Pred)
		cost = c
	}

	p.nextFlowID++
	return &Flow{Index: index, Pred: pred, Cost: cost, edgeContrib: map[int64]float64{}, nodeContrib: map[string]float64{}}, nil
}

func predFromBundle(bundle *spf.PathBundle) (capacity.Pred, float64) {
	pred := capacity.Pred{}
	var cost float64
	for _, path := range bundle.Paths {
		cost = path.Cost
		for i := 1; i < len(path.Nodes); i++ {
			v, u := path.Nodes[i], path.Nodes[i-1]
			if pred[v] == nil {
				pred[v] = map[string][]int64{}
			}
			pred[v][u] = path.Edges
		}
	}
	return pred, cost
}

// placeOnFlow runs a single max-flow-style augmentation restricted to
// flow's fixed path bundle, capped at the lesser of its current
// bottleneck and budget, then records the contribution for later removal.
func (p *FlowPolicy) placeOnFlow(g *digraph.Graph, flow *Flow, budget float64) (float64, error) {
	f, flowDict, err := capacity.CalcGraphCapacity(g, p.src, p.dst, flow.Pred, p.cfg.flowPlacement)
	if err != nil {
		return 0, err
	}
	if f <= p.cfg.tolerance {
		return 0, nil
	}

	amt := f
	if budget < amt {
		amt = budget
	}
	if amt <= p.cfg.tolerance {
		return 0, nil
	}

	for v, preds := range flow.Pred {
		for u, edgeIDs := range preds {
			frac := flowDict[u][v]
			if frac <= 0 {
				continue
			}
			portion := amt * frac
			shares := splitAmongEdges(g, edgeIDs, portion, p.cfg.flowPlacement)
			for id, share := range shares {
				e, err := g.GetEdgeData(id)
				if err != nil {
					continue
				}
				e.Flow += share
				if e.Flows == nil {
					e.Flows = map[digraph.FlowIndex]float64{}
				}
				e.Flows[flow.Index] += share
				flow.edgeContrib[id] += share
			}
			if nd, err := g.GetNodeData(u); err == nil {
				nd.Flow += portion
				if nd.Flows == nil {
					nd.Flows = map[digraph.FlowIndex]float64{}
				}
				nd.Flows[flow.Index] += portion
				flow.nodeContrib[u] += portion
			}
		}
	}

	flow.PlacedVolume += amt
	return amt, nil
}

func splitAmongEdges(g *digraph.Graph, edgeIDs []int64, amt float64, placement capacity.Placement) map[int64]float64 {
	out := map[int64]float64{}
	if len(edgeIDs) == 0 {
		return out
	}
	if placement == capacity.EqualBalanced {
		share := amt / float64(len(edgeIDs))
		for _, id := range edgeIDs {
			out[id] = share
		}
		return out
	}
	var totalCap float64
	for _, id := range edgeIDs {
		if e, err := g.GetEdgeData(id); err == nil {
			totalCap += e.Capacity
		}
	}
	if totalCap <= 0 {
		share := amt / float64(len(edgeIDs))
		for _, id := range edgeIDs {
			out[id] = share
		}
		return out
	}
	for _, id := range edgeIDs {
		e, err := g.GetEdgeData(id)
		if err != nil {
			continue
		}
		out[id] = amt * (e.Capacity / totalCap)
	}
	return out
}
