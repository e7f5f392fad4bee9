package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Query builders for the kv table. SQLite uses "?" placeholders, which is
// squirrel's default format.

func buildUpsertKVQuery(key, value string) (string, []any, error) {
	return sq.Insert("kv").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value").
		ToSql()
}

func buildSelectKVQuery(key string) (string, []any, error) {
	return sq.Select("value").
		From("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
}

func buildDeleteKVQuery(key string) (string, []any, error) {
	return sq.Delete("kv").
		Where(sq.Eq{"key": key}).
		ToSql()
}
