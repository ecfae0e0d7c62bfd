package pgcases

import (
	"context"
	"time"

	"github.com/FocusWW/SiteAPI/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const caseColumns = `
  case_id, tracking_number, status, status_description,
  origin, destination,
  estimated_arrival, actual_arrival,
  internal_notes, customer_name, customer_email,
  created_on, modified_on`

func (s *Storage) CaseByTrackingNumber(ctx context.Context, trackingNumber string) (*models.TrackingCase, error) {
	row := s.db.QueryRow(ctx, `SELECT`+caseColumns+` FROM cases WHERE tracking_number = $1`, trackingNumber)
	return s.scanCaseWithEvents(ctx, row)
}

func (s *Storage) CaseByCaseID(ctx context.Context, caseID string) (*models.TrackingCase, error) {
	row := s.db.QueryRow(ctx, `SELECT`+caseColumns+` FROM cases WHERE case_id = $1`, caseID)
	return s.scanCaseWithEvents(ctx, row)
}

func (s *Storage) SearchCases(ctx context.Context, query string) ([]*models.TrackingCase, error) {
	pattern := "%" + query + "%"
	rows, err := s.db.Query(ctx, `
SELECT`+caseColumns+`
FROM cases
WHERE tracking_number ILIKE $1 OR customer_name ILIKE $1
ORDER BY modified_on DESC
LIMIT 20
`, pattern)
	if err != nil {
		return nil, errors.Wrap(err, "search cases")
	}
	defer rows.Close()

	var out []*models.TrackingCase
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}

	for _, c := range out {
		evs, err := s.listEvents(ctx, c.CaseID)
		if err != nil {
			return nil, err
		}
		c.Events = evs
	}
	return out, nil
}

// SaveCase пишет кейс вместе с историей вех (для сидинга и тестов).
func (s *Storage) SaveCase(ctx context.Context, c *models.TrackingCase) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO cases (
  case_id, tracking_number, status, status_description,
  origin, destination, estimated_arrival, actual_arrival,
  internal_notes, customer_name, customer_email,
  created_on, modified_on
)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (case_id) DO UPDATE SET
  status = EXCLUDED.status,
  status_description = EXCLUDED.status_description,
  estimated_arrival = EXCLUDED.estimated_arrival,
  actual_arrival = EXCLUDED.actual_arrival,
  internal_notes = EXCLUDED.internal_notes,
  modified_on = EXCLUDED.modified_on
`, c.CaseID, c.TrackingNumber, c.Status, c.StatusDescription,
		c.Origin, c.Destination, c.EstimatedArrival, c.ActualArrival,
		c.InternalNotes, c.CustomerName, c.CustomerEmail,
		c.CreatedOn, c.ModifiedOn)
	if err != nil {
		return errors.Wrap(err, "insert case")
	}

	_, err = tx.Exec(ctx, `DELETE FROM case_events WHERE case_id = $1`, c.CaseID)
	if err != nil {
		return errors.Wrap(err, "clear events")
	}
	for _, e := range c.Events {
		_, err := tx.Exec(ctx, `
INSERT INTO case_events (case_id, event_time, location, status, description)
VALUES ($1,$2,$3,$4,$5)
`, c.CaseID, e.Timestamp.UTC(), e.Location, e.Status, e.Description)
		if err != nil {
			return errors.Wrap(err, "insert event")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "commit tx")
	}
	return nil
}

func (s *Storage) scanCaseWithEvents(ctx context.Context, row pgx.Row) (*models.TrackingCase, error) {
	c, err := scanCase(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	evs, err := s.listEvents(ctx, c.CaseID)
	if err != nil {
		return nil, err
	}
	c.Events = evs
	return c, nil
}

func scanCase(row pgx.Row) (*models.TrackingCase, error) {
	var c models.TrackingCase
	var estimated *time.Time
	var actual *time.Time
	if err := row.Scan(
		&c.CaseID, &c.TrackingNumber, &c.Status, &c.StatusDescription,
		&c.Origin, &c.Destination,
		&estimated, &actual,
		&c.InternalNotes, &c.CustomerName, &c.CustomerEmail,
		&c.CreatedOn, &c.ModifiedOn,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, errors.Wrap(err, "scan case")
	}
	c.EstimatedArrival = estimated
	c.ActualArrival = actual
	return &c, nil
}

func (s *Storage) listEvents(ctx context.Context, caseID string) ([]models.TrackingEvent, error) {
	rows, err := s.db.Query(ctx, `
SELECT event_time, location, status, description
FROM case_events
WHERE case_id = $1
ORDER BY event_time DESC
`, caseID)
	if err != nil {
		return nil, errors.Wrap(err, "select events")
	}
	defer rows.Close()

	var out []models.TrackingEvent
	for rows.Next() {
		var e models.TrackingEvent
		if err := rows.Scan(&e.Timestamp, &e.Location, &e.Status, &e.Description); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		out = append(out, e)
	}
	if rows.Err() != nil {
		return nil, errors.Wrap(rows.Err(), "rows")
	}
	return out, nil
}
