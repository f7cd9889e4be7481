// Command batchgen generates lessons for every chapter in an xlsx
// workbook. Lessons go to a JSON output directory, and additionally to
// PostgreSQL when LESSON_DATABASE_URL is set.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jln-hub/lessongen/internal/curriculum"
	"github.com/jln-hub/lessongen/internal/generator"
	"github.com/jln-hub/lessongen/internal/ingest"
	"github.com/jln-hub/lessongen/internal/platform/config"
	"github.com/jln-hub/lessongen/internal/platform/database"
	"github.com/jln-hub/lessongen/internal/store"
)

func main() {
	input := flag.String("input", "", "path to xlsx workbook of chapters (required)")
	outDir := flag.String("out", "lessons", "directory for generated lesson JSON files")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *input, *outDir, logger); err != nil {
		logger.Error("batch generation failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, input, outDir string, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	docs, err := ingest.ReadChapters(input)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no chapters found in %s", input)
	}
	logger.Info("chapters loaded", "count", len(docs), "input", input)

	// Resolve missing grade levels from the curriculum catalog when
	// one is available.
	if catalog, err := curriculum.NewLoader(cfg.CurriculumPath); err == nil {
		for i := range docs {
			if docs[i].GradeLevel == 0 {
				if level, ok := catalog.GradeLevel(docs[i].GradeLabel); ok {
					docs[i].GradeLevel = level
				}
			}
		}
	}

	var lessonStore generator.LessonStore
	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		pg, err := store.NewPostgresStore(db.Pool)
		if err != nil {
			return err
		}
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		lessonStore = pg
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	svc := generator.NewService(generator.NewRuleBased(logger), lessonStore, nil, logger)

	generated, skipped := 0, 0
	for _, doc := range docs {
		lesson, err := svc.Generate(ctx, doc, nil)
		if err != nil {
			logger.Warn("skipping chapter", "title", doc.TitleHint, "error", err.Error())
			skipped++
			continue
		}
		if err := writeLesson(outDir, lesson); err != nil {
			return err
		}
		generated++
	}

	logger.Info("batch complete", "generated", generated, "skipped", skipped, "out", outDir)
	return nil
}

var reUnsafeFilename = regexp.MustCompile(`[^a-z0-9]+`)

func writeLesson(outDir string, lesson *generator.Lesson) error {
	slug := reUnsafeFilename.ReplaceAllString(strings.ToLower(lesson.Result.Title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = lesson.ID
	}

	data, err := json.MarshalIndent(lesson, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lesson: %w", err)
	}

	path := filepath.Join(outDir, fmt.Sprintf("%s-%s.json", slug, lesson.ID[:8]))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write lesson: %w", err)
	}
	return nil
}
