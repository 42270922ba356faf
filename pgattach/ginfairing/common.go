package ginfairing

import (
	"errors"
)

var ErrNilEngine = errors.New("nil gin engine supplied")
var ErrAlreadyAttached = errors.New("fairing is already attached to an engine")
var ErrMissingStore = errors.New("no database store in request context, fairing was not attached")
var ErrPoolConstructionFailed = errors.New("building connection pool failed")
var ErrAcquiringConnectionFailed = errors.New("acquiring connection from pool failed")
var ErrBuildingQueryFailed = errors.New("building count query failed")
var ErrCountingRowsFailed = errors.New("counting rows failed")
