package failure

import (
	"fmt"

	"github.com/networmix/netgraph-go/ngerr"
)

// Sentinel errors, wrapped with package context.
var (
	ErrInvalidArgument = ngerr.ErrInvalidArgument
	ErrUnknownEntity   = ngerr.ErrUnknownEntity
)

func errBadScope(scope EntityScope) error {
	return fmt.Errorf("failure: %w: unsupported entity scope %d", ErrInvalidArgument, scope)
}

func errBadRuleType(rt RuleType) error {
	return fmt.Errorf("failure: %w: unsupported rule type %d", ErrInvalidArgument, rt)
}

func errBadOperator(op Operator) error {
	return fmt.Errorf("failure: %w: unsupported operator %q", ErrInvalidArgument, op)
}

func errMonteCarloConfig(msg string) error {
	return fmt.Errorf("failure: %w: %s", ErrInvalidArgument, msg)
}
