package flowpolicy

import "github.com/networmix/netgraph-go/ngerr"

var (
	ErrInvalidArgument = ngerr.ErrInvalidArgument
	ErrNoMatch         = ngerr.ErrNoMatch
)
