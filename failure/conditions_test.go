package failure

import "testing"

func TestEvaluateCondition_Operators(t *testing.T) {
	attrs := map[string]interface{}{
		"capacity": 10.0,
		"role":     "spine",
		"tags":     []string{"east", "prod"},
	}

	cases := []struct {
		name string
		cond FailureCondition
		want bool
	}{
		{"eq match", FailureCondition{Attr: "role", Operator: OpEQ, Value: "spine"}, true},
		{"eq mismatch", FailureCondition{Attr: "role", Operator: OpEQ, Value: "leaf"}, false},
		{"ne", FailureCondition{Attr: "role", Operator: OpNE, Value: "leaf"}, true},
		{"lt numeric", FailureCondition{Attr: "capacity", Operator: OpLT, Value: 20.0}, true},
		{"ge numeric false", FailureCondition{Attr: "capacity", Operator: OpGE, Value: 20.0}, false},
		{"contains slice", FailureCondition{Attr: "tags", Operator: OpContains, Value: "prod"}, true},
		{"not_contains slice", FailureCondition{Attr: "tags", Operator: OpNotContains, Value: "dev"}, true},
		{"any_value present", FailureCondition{Attr: "role", Operator: OpAnyValue}, true},
		{"any_value absent", FailureCondition{Attr: "missing", Operator: OpAnyValue}, false},
		{"no_value absent", FailureCondition{Attr: "missing", Operator: OpNoValue}, true},
		{"absent attr eq", FailureCondition{Attr: "missing", Operator: OpEQ, Value: "x"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := evaluateCondition(attrs, c.cond); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestMatchesConditions_Logic(t *testing.T) {
	attrs := map[string]interface{}{"a": 1.0, "b": 2.0}
	conds := []FailureCondition{
		{Attr: "a", Operator: OpEQ, Value: 1.0},
		{Attr: "b", Operator: OpEQ, Value: 99.0},
	}
	if !matchesConditions(attrs, conds, LogicOr) {
		t.Error("expected OR logic to match on first condition")
	}
	if matchesConditions(attrs, conds, LogicAnd) {
		t.Error("expected AND logic to fail on second condition")
	}
	if !matchesConditions(attrs, nil, LogicAnd) {
		t.Error("expected zero conditions to match everything")
	}
}
