package demand

import (
	"fmt"

	"github.com/networmix/netgraph-go/ngerr"
)

var (
	ErrInvalidArgument = ngerr.ErrInvalidArgument
	ErrNoMatch         = ngerr.ErrNoMatch
)

func errNoMatch(expr string) error {
	return fmt.Errorf("demand: %w: expression %q matched nothing", ErrNoMatch, expr)
}
