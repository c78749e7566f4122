package persistence

import (
	"context"
	"strings"

	"portfolio/modules/db"
)

// memClient evaluates queries over in-memory tables. Rows are returned in
// insertion order; ordering is left to the caller's assertions.
type memClient struct {
	tables  map[string][]db.Record
	err     error
	queries []db.Query
}

func (m *memClient) HealthCheck(context.Context) error { return m.err }
func (m *memClient) Shutdown(context.Context) error    { return nil }

func (m *memClient) Select(_ context.Context, q db.Query) ([]db.Record, error) {
	m.queries = append(m.queries, q)
	if m.err != nil {
		return nil, m.err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	out := []db.Record{}
	for _, rec := range m.tables[q.Table] {
		if matches(rec, q.Filters) {
			out = append(out, rec)
		}
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func matches(rec db.Record, filters []db.Filter) bool {
	for _, f := range filters {
		if f.Fold {
			s, _ := rec[f.Column].(string)
			if !strings.EqualFold(s, f.Value.(string)) {
				return false
			}
			continue
		}
		if rec[f.Column] != f.Value {
			return false
		}
	}
	return true
}

func (m *memClient) lastQuery() db.Query {
	return m.queries[len(m.queries)-1]
}
