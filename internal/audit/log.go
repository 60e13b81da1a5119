package audit

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/pebble"
	pebblestore "github.com/epochline/epochline/internal/storage/pebble"
	"github.com/epochline/epochline/pkg/id"
)

// Action names recorded in the trail.
const (
	ActionSeed   = "seed"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entry is one recorded write.
type Entry struct {
	ID      string `json:"id"`
	TsMs    int64  `json:"ts_ms"`
	Action  string `json:"action"`
	EventID string `json:"event_id,omitempty"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// Log is the append-only audit trail.
type Log struct {
	db  *pebblestore.DB
	ids *id.Generator
}

// New returns a Log writing to the provided database.
func New(db *pebblestore.DB) *Log {
	return &Log{db: db, ids: id.NewGenerator()}
}

// Append records one entry. The entry's ID and TsMs are assigned here.
func (l *Log) Append(e Entry) (Entry, error) {
	recID := l.ids.Next()
	e.ID = recID.String()
	e.TsMs = id.NowMs()

	val, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("audit: marshal entry: %w", err)
	}
	if err := l.db.Set(recordKey(recID), val); err != nil {
		return Entry{}, fmt.Errorf("audit: append: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// defaults to 50.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	it, err := l.db.NewIter(&pebble.IterOptions{
		LowerBound: keyPrefix,
		UpperBound: keyUpperBound(),
	})
	if err != nil {
		return nil, fmt.Errorf("audit: iter: %w", err)
	}
	defer it.Close()

	var out []Entry
	for ok := it.Last(); ok && len(out) < limit; ok = it.Prev() {
		var e Entry
		if err := json.Unmarshal(it.Value(), &e); err != nil {
			return nil, fmt.Errorf("audit: decode entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
