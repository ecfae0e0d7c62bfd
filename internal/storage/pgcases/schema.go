package pgcases

import (
	"context"

	"github.com/pkg/errors"
)

func (s *Storage) initSchema(ctx context.Context) error {
	stmts := []string{
		`
CREATE TABLE IF NOT EXISTS cases (
  case_id TEXT PRIMARY KEY,
  tracking_number TEXT NOT NULL,
  status TEXT NOT NULL,
  status_description TEXT NOT NULL DEFAULT '',
  origin TEXT NOT NULL DEFAULT '',
  destination TEXT NOT NULL DEFAULT '',
  estimated_arrival TIMESTAMPTZ NULL,
  actual_arrival TIMESTAMPTZ NULL,
  internal_notes TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  created_on TIMESTAMPTZ NOT NULL,
  modified_on TIMESTAMPTZ NOT NULL,
  UNIQUE (tracking_number)
)`,
		`
CREATE TABLE IF NOT EXISTS case_events (
  id BIGSERIAL PRIMARY KEY,
  case_id TEXT NOT NULL REFERENCES cases(case_id) ON DELETE CASCADE,
  event_time TIMESTAMPTZ NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT ''
)`,
		`CREATE INDEX IF NOT EXISTS idx_case_events_case_id_event_time ON case_events(case_id, event_time DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_cases_customer_name ON cases(customer_name)`,
	}

	for _, q := range stmts {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return errors.Wrap(err, "init schema")
		}
	}
	return nil
}
