package failure

import (
	"fmt"
	"strings"
)

// evaluateCondition tests one FailureCondition against an entity's
// attribute map. any_value/no_value test presence only and ignore Value.
func evaluateCondition(attrs map[string]interface{}, c FailureCondition) bool {
	v, present := attrs[c.Attr]

	switch c.Operator {
	case OpAnyValue:
		return present
	case OpNoValue:
		return !present
	}

	if !present {
		// Every remaining operator requires the attribute to be present;
		// an absent attribute never matches.
		return false
	}

	switch c.Operator {
	case OpEQ:
		return valuesEqual(v, c.Value)
	case OpNE:
		return !valuesEqual(v, c.Value)
	case OpLT, OpLE, OpGT, OpGE:
		return compareNumeric(v, c.Value, c.Operator)
	case OpContains:
		return containsValue(v, c.Value)
	case OpNotContains:
		return !containsValue(v, c.Value)
	default:
		return false
	}
}

// matchesConditions combines a rule's conditions with its Logic: "and"
// requires every condition to hold, "or" requires at least one. A rule
// with zero conditions matches every candidate in scope.
func matchesConditions(attrs map[string]interface{}, conds []FailureCondition, logic Logic) bool {
	if len(conds) == 0 {
		return true
	}
	if logic == LogicAnd {
		for _, c := range conds {
			if !evaluateCondition(attrs, c) {
				return false
			}
		}
		return true
	}
	for _, c := range conds {
		if evaluateCondition(attrs, c) {
			return true
		}
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	if af, aok := toFloat64(a); aok {
		if bf, bok := toFloat64(b); bok {
			return af == bf
		}
	}
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

func compareNumeric(a, b interface{}, op Operator) bool {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if !aok || !bok {
		// Fall back to lexicographic string comparison so the operator
		// still has well-defined behavior on string attributes.
		as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
		switch op {
		case OpLT:
			return as < bs
		case OpLE:
			return as <= bs
		case OpGT:
			return as > bs
		case OpGE:
			return as >= bs
		}
		return false
	}
	switch op {
	case OpLT:
		return af < bf
	case OpLE:
		return af <= bf
	case OpGT:
		return af > bf
	case OpGE:
		return af >= bf
	}
	return false
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// containsValue reports whether v "contains" target: membership for
// slices/sets, substring for strings, falling back to string-contains.
func containsValue(v, target interface{}) bool {
	switch vv := v.(type) {
	case []string:
		for _, s := range vv {
			if valuesEqual(s, target) {
				return true
			}
		}
		return false
	case []interface{}:
		for _, s := range vv {
			if valuesEqual(s, target) {
				return true
			}
		}
		return false
	case map[string]struct{}:
		_, ok := vv[fmt.Sprintf("%v", target)]
		return ok
	case string:
		return strings.Contains(vv, fmt.Sprintf("%v", target))
	default:
		return strings.Contains(fmt.Sprintf("%v", v), fmt.Sprintf("%v", target))
	}
}
