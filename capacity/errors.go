package capacity

import "github.com/networmix/netgraph-go/ngerr"

var ErrInvalidArgument = ngerr.ErrInvalidArgument
