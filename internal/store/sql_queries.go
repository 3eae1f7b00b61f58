// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	sessionTable = "session"

	// the table holds at most one row
	sessionRowID = 1
)

func buildGetSessionQuery() (string, []any, error) {
	return sq.Select("token").
		From(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}

func buildSetSessionQuery(token string, now time.Time) (string, []any, error) {
	return sq.Insert(sessionTable).
		Columns("id", "token", "updated_at").
		Values(sessionRowID, token, now.UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at").
		ToSql()
}

func buildClearSessionQuery() (string, []any, error) {
	return sq.Delete(sessionTable).
		Where(sq.Eq{"id": sessionRowID}).
		ToSql()
}
