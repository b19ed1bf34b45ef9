package batches

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	run := Run{
		ID:              "run-1",
		Prefix:          "2024-05-01/run-abc",
		SourceContainer: "invoicebatch",
		ResultContainer: "invoicebatch-result",
		SubmittedAt:     time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO batch_runs").
		WithArgs(
			run.ID,
			run.Prefix,
			nil, // result_id
			nil, // operation_location
			run.SourceContainer,
			run.ResultContainer,
			run.SubmittedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), run); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "prefix", "result_id", "operation_location", "source_container", "result_container", "submitted_at"}).
		AddRow("run-2", "acme", "r-2", "https://x/analyzeBatchResults/r-2", "invoicebatch", "invoicebatch-result", at.Add(time.Minute)).
		AddRow("run-1", "acme", nil, nil, "invoicebatch", "invoicebatch-result", at)

	mock.ExpectQuery("SELECT (.+) FROM batch_runs").
		WithArgs(maxRunsLimit).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	runs, err := repo.ListRecent(context.Background(), 500)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ResultID != "r-2" || runs[1].ResultID != "" || runs[1].OperationLocation != "" {
		t.Fatalf("unexpected runs %+v", runs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
