// Package store persists generated lessons in PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jln-hub/lessongen/internal/analyzer"
	"github.com/jln-hub/lessongen/internal/generator"
)

const dbTimeout = 5 * time.Second

// ErrNotFound is returned when a lesson does not exist.
var ErrNotFound = errors.New("lesson not found")

// PostgresStore is a PostgreSQL-backed generator.LessonStore.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a lesson store backed by pool.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Migrate creates the lesson tables if they do not exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lessons (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL DEFAULT '',
			grade TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			introduction TEXT NOT NULL DEFAULT '',
			objectives JSONB NOT NULL DEFAULT '[]',
			concepts JSONB NOT NULL DEFAULT '[]',
			estimated_duration INT NOT NULL,
			difficulty_level TEXT NOT NULL,
			quality_score REAL NOT NULL,
			ai_model_used TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lesson_sections (
			lesson_id TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
			ord INT NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (lesson_id, ord)
		)`,
		`CREATE TABLE IF NOT EXISTS lesson_questions (
			lesson_id TEXT NOT NULL REFERENCES lessons(id) ON DELETE CASCADE,
			ord INT NOT NULL,
			kind TEXT NOT NULL,
			prompt TEXT NOT NULL,
			options JSONB NOT NULL DEFAULT '[]',
			correct_option TEXT NOT NULL,
			rationale TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			PRIMARY KEY (lesson_id, ord)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate lessons schema: %w", err)
		}
	}
	return nil
}

// SaveLesson upserts a lesson and replaces its sections and questions.
func (s *PostgresStore) SaveLesson(ctx context.Context, lesson *generator.Lesson) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	objectives, err := json.Marshal(lesson.Result.Objectives)
	if err != nil {
		return fmt.Errorf("encode objectives: %w", err)
	}
	concepts, err := json.Marshal(lesson.Result.Concepts)
	if err != nil {
		return fmt.Errorf("encode concepts: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO lessons (id, subject, grade, title, introduction, objectives, concepts,
			estimated_duration, difficulty_level, quality_score, ai_model_used, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (id) DO UPDATE SET
			subject = EXCLUDED.subject,
			grade = EXCLUDED.grade,
			title = EXCLUDED.title,
			introduction = EXCLUDED.introduction,
			objectives = EXCLUDED.objectives,
			concepts = EXCLUDED.concepts,
			estimated_duration = EXCLUDED.estimated_duration,
			difficulty_level = EXCLUDED.difficulty_level,
			quality_score = EXCLUDED.quality_score,
			ai_model_used = EXCLUDED.ai_model_used`,
		lesson.ID,
		lesson.Subject,
		lesson.Grade,
		lesson.Result.Title,
		lesson.Result.Introduction,
		objectives,
		concepts,
		lesson.Result.DurationMinutes,
		string(lesson.Result.Difficulty),
		lesson.Result.QualityScore,
		lesson.ModelUsed,
		lesson.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lesson: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM lesson_sections WHERE lesson_id = $1`, lesson.ID); err != nil {
		return fmt.Errorf("clear sections: %w", err)
	}
	for _, sec := range lesson.Result.Sections {
		_, err := tx.Exec(ctx,
			`INSERT INTO lesson_sections (lesson_id, ord, kind, title, body)
			 VALUES ($1, $2, $3, $4, $5)`,
			lesson.ID, sec.Order, string(sec.Kind), sec.Title, sec.Body,
		)
		if err != nil {
			return fmt.Errorf("insert section %d: %w", sec.Order, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM lesson_questions WHERE lesson_id = $1`, lesson.ID); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	for _, q := range lesson.Result.Questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("encode options: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO lesson_questions (lesson_id, ord, kind, prompt, options, correct_option, rationale, difficulty)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			lesson.ID, q.Order, string(q.Kind), q.Prompt, options, q.CorrectOption, q.Rationale, string(q.Difficulty),
		)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", q.Order, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit lesson: %w", err)
	}
	return nil
}

// GetLesson returns a lesson with its sections and questions.
func (s *PostgresStore) GetLesson(ctx context.Context, id string) (*generator.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	lesson := &generator.Lesson{ID: id}
	var objectives, concepts []byte
	var difficulty string

	err := s.pool.QueryRow(ctx,
		`SELECT subject, grade, title, introduction, objectives, concepts,
			estimated_duration, difficulty_level, quality_score, ai_model_used, created_at
		 FROM lessons WHERE id = $1`,
		id,
	).Scan(
		&lesson.Subject,
		&lesson.Grade,
		&lesson.Result.Title,
		&lesson.Result.Introduction,
		&objectives,
		&concepts,
		&lesson.Result.DurationMinutes,
		&difficulty,
		&lesson.Result.QualityScore,
		&lesson.ModelUsed,
		&lesson.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	lesson.Result.Difficulty = analyzer.LessonLevel(difficulty)

	if err := json.Unmarshal(objectives, &lesson.Result.Objectives); err != nil {
		return nil, fmt.Errorf("decode objectives: %w", err)
	}
	if err := json.Unmarshal(concepts, &lesson.Result.Concepts); err != nil {
		return nil, fmt.Errorf("decode concepts: %w", err)
	}

	sections, err := s.lessonSections(ctx, id)
	if err != nil {
		return nil, err
	}
	lesson.Result.Sections = sections

	questions, err := s.lessonQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	lesson.Result.Questions = questions

	return lesson, nil
}

func (s *PostgresStore) lessonSections(ctx context.Context, id string) ([]analyzer.Section, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ord, kind, title, body
		 FROM lesson_sections
		 WHERE lesson_id = $1
		 ORDER BY ord ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	var sections []analyzer.Section
	for rows.Next() {
		var sec analyzer.Section
		var kind string
		if err := rows.Scan(&sec.Order, &kind, &sec.Title, &sec.Body); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		sec.Kind = analyzer.SectionKind(kind)
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sections: %w", err)
	}
	return sections, nil
}

func (s *PostgresStore) lessonQuestions(ctx context.Context, id string) ([]analyzer.Question, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT ord, kind, prompt, options, correct_option, rationale, difficulty
		 FROM lesson_questions
		 WHERE lesson_id = $1
		 ORDER BY ord ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []analyzer.Question
	for rows.Next() {
		var q analyzer.Question
		var kind, difficulty string
		var options []byte
		if err := rows.Scan(&q.Order, &kind, &q.Prompt, &options, &q.CorrectOption, &q.Rationale, &difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Kind = analyzer.QuestionKind(kind)
		q.Difficulty = analyzer.Difficulty(difficulty)
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("decode options: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}
