// Package ingest reads chapter batches from spreadsheet workbooks.
// Content teams deliver extracted textbook chapters as .xlsx files with
// one chapter per row.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jln-hub/lessongen/internal/analyzer"
)

// Expected column headers, matched case-insensitively. Grade Level is
// optional; the rest are required.
const (
	colSubject    = "subject"
	colGrade      = "grade"
	colGradeLevel = "grade level"
	colTitle      = "title"
	colContent    = "content"
)

// ReadChapters loads all chapter rows from the first sheet of an xlsx
// workbook. Rows with empty content are skipped.
func ReadChapters(path string) ([]analyzer.SourceDocument, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var docs []analyzer.SourceDocument
	for i, row := range rows[1:] {
		doc, ok := rowToDocument(row, columns)
		if !ok {
			continue
		}
		if doc.TitleHint == "" {
			doc.TitleHint = fmt.Sprintf("Chapter %d", i+1)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// mapColumns resolves header names to column indexes.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int)
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colSubject, colGrade, colTitle, colContent} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return columns, nil
}

func rowToDocument(row []string, columns map[string]int) (analyzer.SourceDocument, bool) {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	content := cell(colContent)
	if content == "" {
		return analyzer.SourceDocument{}, false
	}

	level := 0
	if raw := cell(colGradeLevel); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			level = n
		}
	}

	return analyzer.SourceDocument{
		RawText:      content,
		SubjectLabel: cell(colSubject),
		GradeLabel:   cell(colGrade),
		GradeLevel:   level,
		TitleHint:    cell(colTitle),
	}, true
}
