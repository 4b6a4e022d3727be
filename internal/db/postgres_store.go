package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anarkulova/maktab-monitor/internal/logger"
	"github.com/anarkulova/maktab-monitor/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS survey_responses (
	id            TEXT PRIMARY KEY,
	created_at    BIGINT NOT NULL,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	birth_year    INTEGER NOT NULL,
	school_number TEXT NOT NULL,
	class_number  TEXT NOT NULL,
	class_letter  TEXT NOT NULL,
	answers       JSONB NOT NULL
)`

// PostgresStore is the hosted backend (Supabase exposes a plain Postgres
// row store). The table layout mirrors the sqlite backend.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *logger.Logger
	now  func() time.Time
}

// NewPostgresStore connects with exponential backoff; hosted databases
// routinely take a few seconds to accept connections after cold start.
func NewPostgresStore(ctx context.Context, dsn string, log *logger.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres config: %w", err)
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(func() error { return pool.Ping(ctx) }, backoff.WithContext(bo, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("apply postgres schema: %w", err)
	}
	return &PostgresStore{
		pool: pool,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *PostgresStore) InsertResponse(ctx context.Context, r *models.SurveyResponse) (*models.SurveyResponse, error) {
	if r == nil {
		return nil, errors.New("nil response")
	}
	stored := *r
	stored.ID = newRowID()
	stored.Timestamp = s.now().UnixMilli()
	answers, err := EncodeAnswers(r.Answers)
	if err != nil {
		return nil, err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO survey_responses (id, created_at, first_name, last_name, birth_year, school_number, class_number, class_letter, answers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		stored.ID, stored.Timestamp,
		r.User.FirstName, r.User.LastName, r.User.BirthYear,
		r.User.SchoolNumber, r.User.ClassNumber, r.User.ClassLetter,
		answers,
	)
	if err != nil {
		return nil, fmt.Errorf("insert response: %w", err)
	}
	return &stored, nil
}

func (s *PostgresStore) ListResponses(ctx context.Context) ([]*models.SurveyResponse, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, first_name, last_name, birth_year, school_number, class_number, class_letter, answers::text
		 FROM survey_responses ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	out := make([]*models.SurveyResponse, 0, 64)
	for rows.Next() {
		r, err := scanPgResponse(rows)
		if err != nil {
			s.log.WithError(err).Warn("skipping malformed response row")
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetResponse(ctx context.Context, id string) (*models.SurveyResponse, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, first_name, last_name, birth_year, school_number, class_number, class_letter, answers::text
		 FROM survey_responses WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get response: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanPgResponse(rows)
}

func scanPgResponse(rows pgx.Rows) (*models.SurveyResponse, error) {
	var (
		r   models.SurveyResponse
		raw string
	)
	if err := rows.Scan(
		&r.ID, &r.Timestamp,
		&r.User.FirstName, &r.User.LastName, &r.User.BirthYear,
		&r.User.SchoolNumber, &r.User.ClassNumber, &r.User.ClassLetter,
		&raw,
	); err != nil {
		return nil, err
	}
	answers, err := DecodeAnswers(raw)
	if err != nil {
		return nil, fmt.Errorf("row %s: %w", r.ID, err)
	}
	r.Answers = answers
	return &r, nil
}

func (s *PostgresStore) DeleteAllResponses(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM survey_responses`)
	if err != nil {
		return 0, fmt.Errorf("delete all responses: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
