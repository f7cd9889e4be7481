// Package curriculum loads the subject and grade catalog from YAML
// files on disk. The catalog supplies grade levels to the lesson
// analyzer, which uses them for reading-rate and difficulty decisions.
package curriculum

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader loads and caches the curriculum catalog from the filesystem.
type Loader struct {
	rootDir  string
	subjects map[string]Subject
	grades   map[string]Grade
	mu       sync.RWMutex
}

// NewLoader creates a loader and reads all catalog files under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir:  rootDir,
		subjects: make(map[string]Subject),
		grades:   make(map[string]Grade),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading curriculum: %w", err)
	}

	slog.Info("curriculum loaded", "subjects", len(l.subjects), "grades", len(l.grades))
	return l, nil
}

// Subject returns a subject by ID.
func (l *Loader) Subject(id string) (Subject, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.subjects[id]
	return s, ok
}

// Grade returns a grade by ID.
func (l *Loader) Grade(id string) (Grade, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.grades[id]
	return g, ok
}

// GradeLevel resolves a grade's numeric level by ID or display name,
// case-insensitively.
func (l *Loader) GradeLevel(name string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if g, ok := l.grades[name]; ok {
		return g.Level, true
	}
	for _, g := range l.grades {
		if strings.EqualFold(g.Name, name) {
			return g.Level, true
		}
	}
	return 0, false
}

// Subjects returns all subjects sorted by name.
func (l *Loader) Subjects() []Subject {
	l.mu.RLock()
	defer l.mu.RUnlock()
	subjects := make([]Subject, 0, len(l.subjects))
	for _, s := range l.subjects {
		subjects = append(subjects, s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].Name < subjects[j].Name })
	return subjects
}

// Grades returns all grades sorted by level.
func (l *Loader) Grades() []Grade {
	l.mu.RLock()
	defer l.mu.RUnlock()
	grades := make([]Grade, 0, len(l.grades))
	for _, g := range l.grades {
		grades = append(grades, g)
	}
	sort.Slice(grades, func(i, j int) bool { return grades[i].Level < grades[j].Level })
	return grades
}

func (l *Loader) loadAll() error {
	return filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			return l.loadCatalog(path)
		}
		return nil
	})
}

func (l *Loader) loadCatalog(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		slog.Warn("skipping invalid catalog YAML", "path", path, "error", err)
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range c.Subjects {
		if s.ID == "" {
			continue
		}
		l.subjects[s.ID] = s
	}
	for _, g := range c.Grades {
		if g.ID == "" {
			continue
		}
		l.grades[g.ID] = g
	}
	return nil
}
