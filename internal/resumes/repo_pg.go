package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres. Structured fields are stored as
// JSONB; reads reflect the latest committed write (single-document
// read-your-writes is provided by the engine).
type PGRepo struct {
	DB *sql.DB
}

// Insert writes a new record with a generated identity. CreatedAt and
// UpdatedAt are set to the same instant.
func (r *PGRepo) Insert(ctx context.Context, owner string, res Resume, markdown string) (Record, error) {
	const query = `
INSERT INTO resumes (
    id,
    owner,
    name,
    contact,
    skills,
    education,
    experience,
    projects,
    certifications,
    preferences,
    markdown,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	rec := Record{
		ID:        uuid.NewString(),
		Owner:     owner,
		Resume:    res,
		Markdown:  markdown,
		CreatedAt: time.Now().UTC(),
	}
	rec.UpdatedAt = rec.CreatedAt

	contact, err := json.Marshal(res.Contact)
	if err != nil {
		return Record{}, fmt.Errorf("encode contact: %w", err)
	}
	lists := make([][]byte, 0, 5)
	for _, field := range [][]any{res.Skills, res.Education, res.Experience, res.Projects, res.Certifications} {
		encoded, err := json.Marshal(field)
		if err != nil {
			return Record{}, fmt.Errorf("encode list field: %w", err)
		}
		lists = append(lists, encoded)
	}
	preferences, err := json.Marshal(res.Preferences)
	if err != nil {
		return Record{}, fmt.Errorf("encode preferences: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Owner,
		res.Name,
		contact,
		lists[0],
		lists[1],
		lists[2],
		lists[3],
		lists[4],
		preferences,
		markdown,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

// GetByID fetches a record by identity.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT id, owner, name, contact, skills, education, experience, projects, certifications, preferences, markdown, created_at, updated_at
FROM resumes
WHERE id = $1
LIMIT 1`

	var rec Record
	var contact, skills, education, experience, projects, certifications, preferences []byte
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rec.ID,
		&rec.Owner,
		&rec.Resume.Name,
		&contact,
		&skills,
		&education,
		&experience,
		&projects,
		&certifications,
		&preferences,
		&rec.Markdown,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	if err := json.Unmarshal(contact, &rec.Resume.Contact); err != nil {
		return Record{}, fmt.Errorf("decode contact: %w", err)
	}
	for _, pair := range []struct {
		raw  []byte
		dest *[]any
	}{
		{skills, &rec.Resume.Skills},
		{education, &rec.Resume.Education},
		{experience, &rec.Resume.Experience},
		{projects, &rec.Resume.Projects},
		{certifications, &rec.Resume.Certifications},
	} {
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return Record{}, fmt.Errorf("decode list field: %w", err)
		}
		if *pair.dest == nil {
			*pair.dest = []any{}
		}
	}
	if err := json.Unmarshal(preferences, &rec.Resume.Preferences); err != nil {
		return Record{}, fmt.Errorf("decode preferences: %w", err)
	}
	if rec.Resume.Preferences == nil {
		rec.Resume.Preferences = map[string]string{}
	}

	return rec, nil
}

var _ Repo = (*PGRepo)(nil)
