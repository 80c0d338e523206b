// Package demand implements TrafficDemand expansion and the priority-
// ordered placement scheduler: TrafficDemandSpec regex pairs expand into
// concrete Demand objects (combine or full_mesh mode), which Manager
// places round-robin within ascending-priority classes across one or
// more passes.
//
// The two steps are separate Manager calls made in sequence: Expand turns
// every spec into demands, then PlaceAll runs the placement passes.
package demand

import "github.com/networmix/netgraph-go/flowpolicy"

// Mode selects how a TrafficDemandSpec's regex-matched source/sink groups
// become concrete Demand objects.
type Mode int

const (
	// Combine attaches one pseudo-source to every matched source and one
	// pseudo-sink to every matched sink on the working graph, producing a
	// single Demand carrying the full volume.
	Combine Mode = iota
	// FullMesh produces one Demand per (src,sink) pair with src != sink,
	// splitting volume equally (last share absorbs rounding error).
	FullMesh
)

// TrafficDemandSpec is the declarative input to Expand: a pair of regex
// (or "attr:") selectors, a priority class, a volume, an expansion mode,
// and a policy factory used to construct each resulting Demand's
// FlowPolicy.
type TrafficDemandSpec struct {
	// Name disambiguates the pseudo-source/pseudo-sink node names this
	// spec synthesizes in Combine mode; must be unique across specs
	// expanded onto the same working graph.
	Name       string
	SourcePath string
	SinkPath   string
	Priority   int
	Volume     float64
	Mode       Mode
	Class      int
	// NewPolicy constructs the FlowPolicy each resulting Demand places
	// through. Defaults to flowpolicy.NewECMP if nil.
	NewPolicy func() *flowpolicy.FlowPolicy
	Attrs     map[string]interface{}
}

func (s TrafficDemandSpec) newPolicy() *flowpolicy.FlowPolicy {
	if s.NewPolicy != nil {
		return s.NewPolicy()
	}
	return flowpolicy.NewECMP()
}

// Demand is one concrete (src, dst, volume, class) placement target
// produced by Expand, bound to its own FlowPolicy.
type Demand struct {
	SpecName string
	Priority int
	Src, Dst string
	Class    int
	Volume   float64

	PlacedVolume float64
	Policy       *flowpolicy.FlowPolicy
}

// Remaining returns Volume - PlacedVolume.
func (d *Demand) Remaining() float64 { return d.Volume - d.PlacedVolume }
