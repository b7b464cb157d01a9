package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO resumes").
		WithArgs(
			sqlmock.AnyArg(), // id
			"jane@example.com",
			"Jane Doe",
			sqlmock.AnyArg(), // contact
			sqlmock.AnyArg(), // skills
			sqlmock.AnyArg(), // education
			sqlmock.AnyArg(), // experience
			sqlmock.AnyArg(), // projects
			sqlmock.AnyArg(), // certifications
			sqlmock.AnyArg(), // preferences
			"md",
			sqlmock.AnyArg(), // created_at
			sqlmock.AnyArg(), // updated_at
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec, err := repo.Insert(context.Background(), "jane@example.com", sampleResume(), "md")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if rec.ID == "" {
		t.Error("insert must assign an identity")
	}
	if !rec.CreatedAt.Equal(rec.UpdatedAt) {
		t.Error("CreatedAt and UpdatedAt must match on insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPGRepoInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO resumes").
		WillReturnError(errors.New("connection reset"))

	if _, err := repo.Insert(context.Background(), "jane@example.com", sampleResume(), "md"); err == nil {
		t.Error("expected insert error")
	}
}

func TestPGRepoGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "owner", "name", "contact", "skills", "education", "experience",
		"projects", "certifications", "preferences", "markdown", "created_at", "updated_at",
	}).AddRow(
		"11111111-1111-1111-1111-111111111111",
		"jane@example.com",
		"Jane Doe",
		[]byte(`{"email":"jane@example.com","phone":null,"linkedin":null}`),
		[]byte(`["Go","SQL"]`),
		[]byte(`[]`),
		[]byte(`[]`),
		[]byte(`[]`),
		[]byte(`[]`),
		[]byte(`{"location":"remote"}`),
		"## Jane Doe",
		now,
		now,
	)
	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("11111111-1111-1111-1111-111111111111").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "11111111-1111-1111-1111-111111111111")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Resume.Name != "Jane Doe" {
		t.Errorf("name = %q", rec.Resume.Name)
	}
	if rec.Resume.Contact.Email == nil || *rec.Resume.Contact.Email != "jane@example.com" {
		t.Errorf("contact = %+v", rec.Resume.Contact)
	}
	if rec.Resume.Contact.Phone != nil {
		t.Error("null phone must stay nil")
	}
	if len(rec.Resume.Skills) != 2 {
		t.Errorf("skills = %v", rec.Resume.Skills)
	}
	if rec.Resume.Preferences["location"] != "remote" {
		t.Errorf("preferences = %v", rec.Resume.Preferences)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM resumes").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
