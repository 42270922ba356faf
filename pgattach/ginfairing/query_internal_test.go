package ginfairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/attachio/gin-pgx-attach/pgattach"
)

func Test_BuildCountQuery(t *testing.T) {
	sqlQuery, err := buildCountQuery(nil, "async_sessions")

	require.NoError(t, err)
	assert.Equal(t, `SELECT COUNT(*) FROM "async_sessions"`, sqlQuery)
}

func Test_BuildCountQuery_EmptyTableName(t *testing.T) {
	_, err := buildCountQuery(nil, "")

	assert.ErrorIs(t, err, ErrBuildingQueryFailed)
	assert.ErrorIs(t, err, pgattach.ErrEmptyTableName)
}
