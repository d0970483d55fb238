package store

import "time"

// sqliteTime is the layout SQLite's datetime('now') produces. Timestamps
// bound as parameters use the same layout (UTC) so string comparison against
// datetime('now') in WHERE clauses stays correct.
const sqliteTime = "2006-01-02 15:04:05"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

type rowScanner interface {
	Scan(dest ...any) error
}
