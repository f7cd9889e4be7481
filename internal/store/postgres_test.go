package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jln-hub/lessongen/internal/analyzer"
	"github.com/jln-hub/lessongen/internal/generator"
	"github.com/jln-hub/lessongen/internal/platform/database"
	"github.com/jln-hub/lessongen/internal/store"
)

// startPostgres spins up a disposable PostgreSQL container. Tests are
// skipped when Docker is not available.
func startPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("lessons"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("ConnectionString() error = %v", err)
	}

	db, err := database.New(ctx, connStr, 5, 1)
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(db.Close)

	s, err := store.NewPostgresStore(db.Pool)
	if err != nil {
		t.Fatalf("NewPostgresStore() error = %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return s
}

func generatedLesson(t *testing.T) *generator.Lesson {
	t.Helper()
	pipeline := analyzer.New(nil)
	result := pipeline.Analyze(analyzer.SourceDocument{
		RawText:      strings.Repeat("Fractions describe equal parts of a whole object or group. ", 20),
		SubjectLabel: "Mathematics",
		GradeLabel:   "Primary 4",
		GradeLevel:   4,
		TitleHint:    "Introduction to Fractions",
	})
	return &generator.Lesson{
		ID:        "lesson-fractions-1",
		Subject:   "Mathematics",
		Grade:     "Primary 4",
		ModelUsed: "rule-based",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Result:    result,
	}
}

func TestPostgresStoreSaveAndGet(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()

	lesson := generatedLesson(t)
	if err := s.SaveLesson(ctx, lesson); err != nil {
		t.Fatalf("SaveLesson() error = %v", err)
	}

	got, err := s.GetLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson() error = %v", err)
	}

	if got.Result.Title != lesson.Result.Title {
		t.Errorf("Title = %q, want %q", got.Result.Title, lesson.Result.Title)
	}
	if got.Subject != "Mathematics" || got.Grade != "Primary 4" {
		t.Errorf("Subject/Grade = %q/%q", got.Subject, got.Grade)
	}
	if len(got.Result.Sections) != len(lesson.Result.Sections) {
		t.Errorf("sections = %d, want %d", len(got.Result.Sections), len(lesson.Result.Sections))
	}
	if len(got.Result.Questions) != len(lesson.Result.Questions) {
		t.Errorf("questions = %d, want %d", len(got.Result.Questions), len(lesson.Result.Questions))
	}
	for i, sec := range got.Result.Sections {
		if sec.Order != i {
			t.Errorf("section %d order = %d, sections must come back in order", i, sec.Order)
		}
	}
	if got.Result.QualityScore != lesson.Result.QualityScore {
		t.Errorf("QualityScore = %v, want %v", got.Result.QualityScore, lesson.Result.QualityScore)
	}
}

func TestPostgresStoreUpsert(t *testing.T) {
	s := startPostgres(t)
	ctx := context.Background()

	lesson := generatedLesson(t)
	if err := s.SaveLesson(ctx, lesson); err != nil {
		t.Fatalf("first SaveLesson() error = %v", err)
	}

	lesson.Result.Title = "Fractions, Revised"
	lesson.Result.Questions = lesson.Result.Questions[:3]
	for i := range lesson.Result.Questions {
		lesson.Result.Questions[i].Order = i
	}
	if err := s.SaveLesson(ctx, lesson); err != nil {
		t.Fatalf("second SaveLesson() error = %v", err)
	}

	got, err := s.GetLesson(ctx, lesson.ID)
	if err != nil {
		t.Fatalf("GetLesson() error = %v", err)
	}
	if got.Result.Title != "Fractions, Revised" {
		t.Errorf("Title = %q, upsert should replace the row", got.Result.Title)
	}
	if len(got.Result.Questions) != 3 {
		t.Errorf("questions = %d, want 3 after replace", len(got.Result.Questions))
	}
}

func TestPostgresStoreGetMissing(t *testing.T) {
	s := startPostgres(t)

	_, err := s.GetLesson(context.Background(), "does-not-exist")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetLesson() error = %v, want ErrNotFound", err)
	}
}
