package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/anarkulova/maktab-monitor/internal/logger"
	"github.com/anarkulova/maktab-monitor/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS survey_responses (
	id            TEXT PRIMARY KEY,
	created_at    INTEGER NOT NULL,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	birth_year    INTEGER NOT NULL,
	school_number TEXT NOT NULL,
	class_number  TEXT NOT NULL,
	class_letter  TEXT NOT NULL,
	answers       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_responses_created_at ON survey_responses(created_at);
`

// SQLiteStore is the default local backend.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time
}

func NewSQLiteStore(path string, log *logger.Logger) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := conn.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := conn.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &SQLiteStore{
		db:  conn,
		log: log,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *SQLiteStore) InsertResponse(ctx context.Context, r *models.SurveyResponse) (*models.SurveyResponse, error) {
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
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO survey_responses (id, created_at, first_name, last_name, birth_year, school_number, class_number, class_letter, answers)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
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

func (s *SQLiteStore) ListResponses(ctx context.Context) ([]*models.SurveyResponse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, first_name, last_name, birth_year, school_number, class_number, class_letter, answers
		 FROM survey_responses ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	out := make([]*models.SurveyResponse, 0, 64)
	for rows.Next() {
		r, err := s.scanResponse(rows.Scan)
		if err != nil {
			// malformed legacy row: skip, never feed it to aggregation
			s.log.WithError(err).Warn("skipping malformed response row")
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetResponse(ctx context.Context, id string) (*models.SurveyResponse, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, first_name, last_name, birth_year, school_number, class_number, class_letter, answers
		 FROM survey_responses WHERE id = ?`, id)
	r, err := s.scanResponse(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return r, err
}

func (s *SQLiteStore) scanResponse(scan func(...any) error) (*models.SurveyResponse, error) {
	var (
		r   models.SurveyResponse
		raw string
	)
	if err := scan(
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

func (s *SQLiteStore) DeleteAllResponses(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM survey_responses`)
	if err != nil {
		return 0, fmt.Errorf("delete all responses: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Close() error { return s.db.Close() }
