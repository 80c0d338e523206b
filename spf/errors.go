package spf

import (
	"fmt"

	"github.com/networmix/netgraph-go/ngerr"
)

var (
	ErrUnknownEntity   = ngerr.ErrUnknownEntity
	ErrInvalidArgument = ngerr.ErrInvalidArgument
)

func errUnknownSrc(src string) error {
	return fmt.Errorf("spf: %w: source node %q", ErrUnknownEntity, src)
}
