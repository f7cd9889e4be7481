package curriculum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jln-hub/lessongen/internal/curriculum"
)

func setupTestCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	subjects := `subjects:
  - id: math
    name: Mathematics
    description: Numbers, shapes, and reasoning
  - id: science
    name: Science
`
	grades := `grades:
  - id: p4
    name: Primary 4
    level: 4
  - id: f1
    name: Form 1
    level: 7
`
	if err := os.WriteFile(filepath.Join(dir, "subjects.yaml"), []byte(subjects), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "grades")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "grades.yaml"), []byte(grades), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoader_LoadCatalog(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCatalog(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	subjects := loader.Subjects()
	if len(subjects) != 2 {
		t.Fatalf("Subjects() = %d, want 2", len(subjects))
	}
	if subjects[0].Name != "Mathematics" {
		t.Errorf("subjects not sorted by name: %q first", subjects[0].Name)
	}

	grades := loader.Grades()
	if len(grades) != 2 {
		t.Fatalf("Grades() = %d, want 2", len(grades))
	}
	if grades[0].Level != 4 || grades[1].Level != 7 {
		t.Errorf("grades not sorted by level: %+v", grades)
	}
}

func TestLoader_GradeLevel(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCatalog(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	tests := []struct {
		name      string
		wantLevel int
		wantFound bool
	}{
		{"p4", 4, true},
		{"Primary 4", 4, true},
		{"primary 4", 4, true},
		{"Form 1", 7, true},
		{"Grade 99", 0, false},
	}
	for _, tt := range tests {
		level, found := loader.GradeLevel(tt.name)
		if found != tt.wantFound || level != tt.wantLevel {
			t.Errorf("GradeLevel(%q) = %d, %v, want %d, %v", tt.name, level, found, tt.wantLevel, tt.wantFound)
		}
	}
}

func TestLoader_SkipsInvalidYAML(t *testing.T) {
	dir := setupTestCatalog(t)
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("subjects: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	loader, err := curriculum.NewLoader(dir)
	if err != nil {
		t.Fatalf("NewLoader() error = %v, invalid files should be skipped", err)
	}
	if len(loader.Subjects()) != 2 {
		t.Errorf("Subjects() = %d, want 2", len(loader.Subjects()))
	}
}

func TestLoader_Subject(t *testing.T) {
	loader, err := curriculum.NewLoader(setupTestCatalog(t))
	if err != nil {
		t.Fatalf("NewLoader() error = %v", err)
	}

	s, found := loader.Subject("science")
	if !found || s.Name != "Science" {
		t.Errorf("Subject(science) = %+v, %v", s, found)
	}
	if _, found := loader.Subject("history"); found {
		t.Error("Subject(history) should not be found")
	}
}
