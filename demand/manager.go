// File: manager.go
// Role: Manager (the "Demand Manager"): expands TrafficDemandSpecs onto
// a shared working graph and runs the priority-ordered round-robin
// placement scheduler.
package demand

import (
	"sort"

	"github.com/networmix/netgraph-go/digraph"
)

// PlaceOptions configures Manager.PlaceAll's round-robin scheduler.
type PlaceOptions struct {
	// Auto requests up to 3 passes across priorities with early stop on no
	// progress, matching placement_rounds == "auto". Rounds is ignored
	// when Auto is set.
	Auto   bool
	Rounds int

	ReoptimizeAfterEachRound bool
	Tolerance                float64
}

func (o PlaceOptions) resolve() PlaceOptions {
	if o.Tolerance <= 0 {
		o.Tolerance = 1e-9
	}
	if o.Auto {
		o.Rounds = 3
	} else if o.Rounds <= 0 {
		o.Rounds = 1
	}
	return o
}

// Manager expands demand specs onto one working graph and schedules their
// placement.
type Manager struct {
	g       *digraph.Graph
	demands []*Demand
}

// NewManager returns a Manager operating on g (typically a Network/
// NetworkView's working graph).
func NewManager(g *digraph.Graph) *Manager {
	return &Manager{g: g}
}

// Expand runs Expand for every spec and appends the resulting Demands to
// the manager's registry.
func (m *Manager) Expand(sel nodeSelector, specs []TrafficDemandSpec) error {
	for _, spec := range specs {
		ds, err := Expand(m.g, sel, spec)
		if err != nil {
			return err
		}
		m.demands = append(m.demands, ds...)
	}
	return nil
}

// Demands returns a snapshot of the manager's current demand registry.
func (m *Manager) Demands() []*Demand {
	out := make([]*Demand, len(m.demands))
	copy(out, m.demands)
	return out
}

// PlaceAll runs the priority-ordered round-robin scheduler and returns
// the total volume placed across all demands.
func (m *Manager) PlaceAll(opts PlaceOptions) (float64, error) {
	opts = opts.resolve()

	byPriority := map[int][]*Demand{}
	var priorities []int
	for _, d := range m.demands {
		if _, seen := byPriority[d.Priority]; !seen {
			priorities = append(priorities, d.Priority)
		}
		byPriority[d.Priority] = append(byPriority[d.Priority], d)
	}
	sort.Ints(priorities)

	var totalPlaced float64
	for pass := 0; pass < opts.Rounds; pass++ {
		progress := false

		for _, prio := range priorities {
			for _, d := range byPriority[prio] {
				remaining := d.Remaining()
				if remaining <= opts.Tolerance {
					continue
				}
				placed, _, err := d.Policy.PlaceDemand(m.g, d.Src, d.Dst, d.Class, remaining)
				if err != nil {
					continue // a single unplaceable demand does not abort the scheduler
				}
				d.PlacedVolume += placed
				totalPlaced += placed
				if placed > opts.Tolerance {
					progress = true
				}
			}
		}

		if opts.ReoptimizeAfterEachRound {
			for _, d := range m.demands {
				if d.PlacedVolume <= opts.Tolerance {
					continue
				}
				placed, _, err := d.Policy.RebalanceDemand(m.g, d.PlacedVolume)
				if err == nil {
					d.PlacedVolume = placed
				}
			}
		}

		if !progress {
			break
		}

		var totalRemaining float64
		for _, d := range m.demands {
			totalRemaining += d.Remaining()
		}
		if totalRemaining <= opts.Tolerance {
			break
		}
	}

	return totalPlaced, nil
}

// FlowDetail summarizes one demand's placement outcome.
type FlowDetail struct {
	SpecName  string
	Src, Dst  string
	Class     int
	Volume    float64
	Placed    float64
	Remaining float64
}

// GetFlowDetails returns one FlowDetail per registered demand.
func (m *Manager) GetFlowDetails() []FlowDetail {
	out := make([]FlowDetail, 0, len(m.demands))
	for _, d := range m.demands {
		out = append(out, FlowDetail{
			SpecName:  d.SpecName,
			Src:       d.Src,
			Dst:       d.Dst,
			Class:     d.Class,
			Volume:    d.Volume,
			Placed:    d.PlacedVolume,
			Remaining: d.Remaining(),
		})
	}
	return out
}

// SummarizeLinkUsage returns, for every edge carrying nonzero flow in the
// working graph, the absolute flow it carries.
func (m *Manager) SummarizeLinkUsage() map[int64]float64 {
	out := map[int64]float64{}
	for _, id := range m.g.Edges() {
		e, err := m.g.GetEdgeData(id)
		if err != nil || e.Flow == 0 {
			continue
		}
		out[id] = e.Flow
	}
	return out
}

// TrafficResult is one demand's outcome in GetTrafficResults' detailed
// form, including a per-flow cost/placed breakdown.
type TrafficResult struct {
	FlowDetail
	Flows []FlowPlacement
}

// FlowPlacement is one FlowPolicy-managed Flow's contribution to its
// demand's placement.
type FlowPlacement struct {
	Cost         float64
	PlacedVolume float64
}

// GetTrafficResults returns per-demand results; when detailed, each
// result also lists its policy's individual Flow placements.
func (m *Manager) GetTrafficResults(detailed bool) []TrafficResult {
	out := make([]TrafficResult, 0, len(m.demands))
	for _, d := range m.demands {
		r := TrafficResult{FlowDetail: FlowDetail{
			SpecName: d.SpecName, Src: d.Src, Dst: d.Dst, Class: d.Class,
			Volume: d.Volume, Placed: d.PlacedVolume, Remaining: d.Remaining(),
		}}
		if detailed {
			for _, f := range d.Policy.Flows() {
				r.Flows = append(r.Flows, FlowPlacement{Cost: f.Cost, PlacedVolume: f.PlacedVolume})
			}
		}
		out = append(out, r)
	}
	return out
}
