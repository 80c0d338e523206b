package maxflow

import "github.com/networmix/netgraph-go/ngerr"

var (
	ErrInvalidArgument = ngerr.ErrInvalidArgument
	ErrUnknownEntity   = ngerr.ErrUnknownEntity
)
