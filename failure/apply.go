// File: apply.go
// Role: FailurePolicy.ApplyFailures: per-rule candidate filtering
// (match-cached), all/random/choice selection, and risk-group cascading.
package failure

import (
	"math/rand"
	"sort"
	"time"

	"github.com/networmix/netgraph-go/network"
)

// entityAttrs pairs an entity's identifier, attrs, and risk-group tags so
// ApplyFailures can treat nodes, links, and risk groups uniformly.
type entityAttrs struct {
	id         string
	attrs      map[string]interface{}
	riskGroups map[string]struct{}
}

func nodeEntities(nodes []*network.Node) []entityAttrs {
	out := make([]entityAttrs, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, entityAttrs{id: n.Name, attrs: n.Attrs, riskGroups: n.RiskGroups})
	}
	return out
}

func linkEntities(links []*network.Link) []entityAttrs {
	out := make([]entityAttrs, 0, len(links))
	for _, l := range links {
		out = append(out, entityAttrs{id: l.ID, attrs: l.Attrs, riskGroups: l.RiskGroups})
	}
	return out
}

func riskGroupEntities(groups []*network.RiskGroup) []entityAttrs {
	out := make([]entityAttrs, 0, len(groups))
	for _, g := range groups {
		out = append(out, entityAttrs{id: g.Name, attrs: g.Attrs})
	}
	return out
}

// ApplyFailures runs the full selection pipeline 
// against the given candidate universes and returns the sorted failed
// node names and link ids separately (risk groups are an intermediate
// cascading mechanism, not part of the returned identifier lists — a
// caller that also wants failed risk-group names can derive them from
// FailRiskGroups/FailRiskGroupChildren plus the returned entities'
// RiskGroups tags).
func (p *FailurePolicy) ApplyFailures(
	nodes []*network.Node,
	links []*network.Link,
	riskGroups []*network.RiskGroup,
	seed *uint64,
) (failedNodes []string, failedLinks []string, err error) {
	rng := newRand(seed)

	nodeEnts := nodeEntities(nodes)
	linkEnts := linkEntities(links)
	rgEnts := riskGroupEntities(riskGroups)

	selectedNodes := map[string]struct{}{}
	selectedLinks := map[string]struct{}{}
	selectedRiskGroups := map[string]struct{}{}

	for _, rule := range p.Rules {
		var universe []entityAttrs
		switch rule.EntityScope {
		case ScopeNode:
			universe = nodeEnts
		case ScopeLink:
			universe = linkEnts
		case ScopeRiskGroup:
			universe = rgEnts
		default:
			return nil, nil, errBadScope(rule.EntityScope)
		}

		candidates, cerr := p.candidatesFor(rule, universe)
		if cerr != nil {
			return nil, nil, cerr
		}

		selected, serr := selectFrom(candidates, rule, rng)
		if serr != nil {
			return nil, nil, serr
		}

		switch rule.EntityScope {
		case ScopeNode:
			for _, id := range selected {
				selectedNodes[id] = struct{}{}
			}
		case ScopeLink:
			for _, id := range selected {
				selectedLinks[id] = struct{}{}
			}
		case ScopeRiskGroup:
			for _, id := range selected {
				selectedRiskGroups[id] = struct{}{}
			}
		}
	}

	if p.FailRiskGroups || len(selectedRiskGroups) > 0 {
		cascadeRiskGroups := map[string]struct{}{}
		for rg := range selectedRiskGroups {
			cascadeRiskGroups[rg] = struct{}{}
		}
		for _, n := range nodeEnts {
			if _, ok := selectedNodes[n.id]; !ok {
				continue
			}
			for rg := range n.riskGroups {
				cascadeRiskGroups[rg] = struct{}{}
			}
		}
		for _, l := range linkEnts {
			if _, ok := selectedLinks[l.id]; !ok {
				continue
			}
			for rg := range l.riskGroups {
				cascadeRiskGroups[rg] = struct{}{}
			}
		}

		if p.FailRiskGroupChildren {
			expandRiskGroupChildren(riskGroups, cascadeRiskGroups)
		}

		if p.FailRiskGroups {
			for _, n := range nodeEnts {
				if intersects(n.riskGroups, cascadeRiskGroups) {
					selectedNodes[n.id] = struct{}{}
				}
			}
			for _, l := range linkEnts {
				if intersects(l.riskGroups, cascadeRiskGroups) {
					selectedLinks[l.id] = struct{}{}
				}
			}
		}
	}

	return sortedKeys(selectedNodes), sortedKeys(selectedLinks), nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func intersects(a, b map[string]struct{}) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			return true
		}
	}
	return false
}

// expandRiskGroupChildren recursively adds every descendant of each risk
// group already in set, scanning the full forest passed to ApplyFailures.
func expandRiskGroupChildren(groups []*network.RiskGroup, set map[string]struct{}) {
	byName := map[string]*network.RiskGroup{}
	var index func(*network.RiskGroup)
	index = func(g *network.RiskGroup) {
		byName[g.Name] = g
		for _, c := range g.Children {
			index(c)
		}
	}
	for _, g := range groups {
		index(g)
	}

	var addChildren func(*network.RiskGroup)
	addChildren = func(g *network.RiskGroup) {
		for _, c := range g.Children {
			if _, already := set[c.Name]; already {
				continue
			}
			set[c.Name] = struct{}{}
			addChildren(c)
		}
	}
	for name := range set {
		if g, ok := byName[name]; ok {
			addChildren(g)
		}
	}
}

// candidatesFor filters universe by rule's conditions, using and
// populating the match cache when UseCache is set.
func (p *FailurePolicy) candidatesFor(rule FailureRule, universe []entityAttrs) ([]entityAttrs, error) {
	if p.UseCache {
		key := rule.structHash()
		if ids, ok := p.cache[key]; ok {
			return filterByIDs(universe, ids), nil
		}
		matches := filterCandidates(universe, rule)
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.id
		}
		p.cache[key] = ids
		return matches, nil
	}
	return filterCandidates(universe, rule), nil
}

func filterCandidates(universe []entityAttrs, rule FailureRule) []entityAttrs {
	var out []entityAttrs
	for _, e := range universe {
		if matchesConditions(e.attrs, rule.Conditions, rule.Logic) {
			out = append(out, e)
		}
	}
	return out
}

func filterByIDs(universe []entityAttrs, ids []string) []entityAttrs {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	var out []entityAttrs
	for _, e := range universe {
		if _, ok := want[e.id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// selectFrom applies rule.RuleType to candidates.
// Candidates are sorted by id first so Bernoulli/subset draws consume the
// seeded rng in a fixed, reproducible order.
func selectFrom(candidates []entityAttrs, rule FailureRule, rng *rand.Rand) ([]string, error) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].id < candidates[j].id })

	switch rule.RuleType {
	case RuleAll:
		out := make([]string, len(candidates))
		for i, c := range candidates {
			out[i] = c.id
		}
		return out, nil
	case RuleRandom:
		var out []string
		for _, c := range candidates {
			if rng.Float64() < rule.Probability {
				out = append(out, c.id)
			}
		}
		return out, nil
	case RuleChoice:
		n := rule.Count
		if n > len(candidates) {
			n = len(candidates)
		}
		if n <= 0 {
			return nil, nil
		}
		perm := rng.Perm(len(candidates))
		out := make([]string, n)
		for i := 0; i < n; i++ {
			out[i] = candidates[perm[i]].id
		}
		return out, nil
	default:
		return nil, errBadRuleType(rule.RuleType)
	}
}

// newRand returns a fresh, call-scoped RNG, never the global math/rand
// state. A nil seed means non-deterministic mode.
func newRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(int64(*seed)))
}
