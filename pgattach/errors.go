package pgattach

import (
	"errors"
)

var ErrEmptyDatabaseName = errors.New("empty database name supplied")
var ErrEmptyUsername = errors.New("empty username supplied")
var ErrEmptyPassword = errors.New("empty password supplied")
var ErrEmptyHost = errors.New("empty host supplied")
var ErrInvalidPort = errors.New("invalid port supplied")
var ErrEmptyTableName = errors.New("empty table name supplied")
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
