// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGetSessionQuery(t *testing.T) {
	query, args, err := buildGetSessionQuery()

	require.NoError(t, err)
	assert.Equal(t, "SELECT token FROM session WHERE id = ?", query)
	assert.Equal(t, []any{sessionRowID}, args)
}

func TestBuildSetSessionQuery(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))

	query, args, err := buildSetSessionQuery("h.p.s", now)

	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO session (id,token,updated_at) VALUES (?,?,?) "+
			"ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at",
		query)
	require.Len(t, args, 3)
	assert.Equal(t, sessionRowID, args[0])
	assert.Equal(t, "h.p.s", args[1])
	assert.Equal(t, now.UTC(), args[2])
}

func TestBuildClearSessionQuery(t *testing.T) {
	query, args, err := buildClearSessionQuery()

	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM session WHERE id = ?", query)
	assert.Equal(t, []any{sessionRowID}, args)
}
