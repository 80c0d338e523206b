// Package failure implements FailurePolicy (rule-based condition matching
// over nodes/links/risk-groups with all/random/choice selection and
// risk-group cascading) and FailureManager (the Monte-Carlo driver that
// dedupes iterations by exclusion set and dispatches unique groups across
// a bounded worker pool).
//
// Errors follow the module-wide convention of wrapping an ngerr sentinel
// with %w plus package context. Parallel dispatch uses
// golang.org/x/sync/errgroup for bounded concurrency with first-error
// propagation and context cancellation.
package failure

// Operator is a FailureCondition comparison operator.
type Operator string

const (
	OpEQ           Operator = "=="
	OpNE           Operator = "!="
	OpLT           Operator = "<"
	OpLE           Operator = "<="
	OpGT           Operator = ">"
	OpGE           Operator = ">="
	OpContains     Operator = "contains"
	OpNotContains  Operator = "not_contains"
	OpAnyValue     Operator = "any_value"
	OpNoValue      Operator = "no_value"
)

// FailureCondition tests one attribute of a candidate entity.
type FailureCondition struct {
	Attr     string
	Operator Operator
	Value    interface{}
}

// Logic combines a rule's conditions.
type Logic int

const (
	LogicOr Logic = iota // default zero value
	LogicAnd
)

// EntityScope selects which collection a FailureRule draws candidates from.
type EntityScope int

const (
	ScopeNode EntityScope = iota
	ScopeLink
	ScopeRiskGroup
)

// RuleType selects how matched candidates become selected failures.
type RuleType int

const (
	// RuleAll selects every match.
	RuleAll RuleType = iota
	// RuleRandom selects each match independently via a Bernoulli trial
	// with probability Probability.
	RuleRandom
	// RuleChoice selects a uniformly random subset of size
	// min(Count, len(matches)) without replacement.
	RuleChoice
)

// FailureRule is one independently-evaluated selection rule.
// The union of every rule's selection across a FailurePolicy is its
// failure set.
type FailureRule struct {
	EntityScope EntityScope
	Conditions  []FailureCondition
	Logic       Logic // default LogicOr (zero value)

	RuleType    RuleType
	Probability float64 // used when RuleType == RuleRandom
	Count       int     // used when RuleType == RuleChoice
}

// structHash returns a stable hash over the rule's fields, used as the
// match cache's key.
func (r FailureRule) structHash() uint64 {
	h := fnv1a(nil)
	h = fnv1aWrite(h, []byte{byte(r.EntityScope), byte(r.Logic), byte(r.RuleType)})

	// Conditions are written in declaration order, which is already
	// deterministic per policy construction; rules need not be
	// order-independent.
	for _, c := range r.Conditions {
		h = fnv1aWrite(h, []byte(c.Attr))
		h = fnv1aWrite(h, []byte(c.Operator))
		h = fnv1aWrite(h, []byte(formatValue(c.Value)))
	}
	h = fnv1aWrite(h, []byte(formatValue(r.Probability)))
	h = fnv1aWrite(h, []byte(formatValue(r.Count)))
	return h
}

// FailurePolicy is an immutable, ordered list of FailureRules plus the
// risk-group cascading flags. The match cache is owned by one
// FailurePolicy instance and is not internally thread-safe; concurrent
// callers must either clone per worker or wrap access in a mutex.
// FailureManager does neither: it computes every iteration's exclusions
// serially with its own policy before any analysis runs concurrently.
type FailurePolicy struct {
	Name   string
	Rules  []FailureRule

	FailRiskGroups        bool
	FailRiskGroupChildren bool

	UseCache bool
	cache    map[uint64][]string
}

// NewFailurePolicy constructs an empty policy ready for rules to be
// appended via WithRule; UseCache defaults to true since repeated
// condition matching against the same rule is the expected fast path.
func NewFailurePolicy(name string) *FailurePolicy {
	return &FailurePolicy{Name: name, UseCache: true, cache: make(map[uint64][]string)}
}

// WithRule appends a rule and returns the policy for chaining.
func (p *FailurePolicy) WithRule(r FailureRule) *FailurePolicy {
	p.Rules = append(p.Rules, r)
	return p
}

// WithRiskGroupCascade sets the two risk-group expansion flags: whether a
// selected entity's risk groups pull in every other member, and whether
// that expansion recurses into child risk groups.
func (p *FailurePolicy) WithRiskGroupCascade(failRiskGroups, failRiskGroupChildren bool) *FailurePolicy {
	p.FailRiskGroups = failRiskGroups
	p.FailRiskGroupChildren = failRiskGroupChildren
	return p
}

// InvalidateCache clears the match cache; callers invoke this when the
// underlying topology has changed.
func (p *FailurePolicy) InvalidateCache() {
	p.cache = make(map[uint64][]string)
}

// Clone returns a policy with the same rules and flags but a fresh, empty
// cache, so a concurrent caller can give each worker its own cache without
// sharing mutable state.
func (p *FailurePolicy) Clone() *FailurePolicy {
	c := &FailurePolicy{
		Name:                  p.Name,
		Rules:                 append([]FailureRule(nil), p.Rules...),
		FailRiskGroups:        p.FailRiskGroups,
		FailRiskGroupChildren: p.FailRiskGroupChildren,
		UseCache:              p.UseCache,
		cache:                 make(map[uint64][]string),
	}
	return c
}
