// Package api exposes lesson generation over HTTP and websocket.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/jln-hub/lessongen/internal/analyzer"
	"github.com/jln-hub/lessongen/internal/curriculum"
	"github.com/jln-hub/lessongen/internal/generator"
)

// ReadyChecker reports whether a dependency is reachable.
type ReadyChecker func(ctx context.Context) error

// API holds the handlers' dependencies.
type API struct {
	svc     *generator.Service
	catalog *curriculum.Loader
	ready   map[string]ReadyChecker
	log     *slog.Logger
}

// New creates the API. catalog may be nil when no curriculum directory
// is configured.
func New(svc *generator.Service, catalog *curriculum.Loader, log *slog.Logger) *API {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &API{
		svc:     svc,
		catalog: catalog,
		ready:   make(map[string]ReadyChecker),
		log:     log,
	}
}

// AddReadyCheck registers a named dependency for the readiness probe.
func (a *API) AddReadyCheck(name string, check ReadyChecker) {
	a.ready[name] = check
}

// Mux creates the HTTP router.
func (a *API) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", a.handleHealthz)
	mux.HandleFunc("GET /readyz", a.handleReadyz)
	mux.HandleFunc("POST /api/lessons/generate", a.handleGenerate)
	mux.HandleFunc("POST /api/lessons/validate", a.handleValidate)
	mux.HandleFunc("GET /api/lessons/{id}", a.handleGetLesson)
	mux.HandleFunc("GET /api/lessons/generate/ws", a.handleGenerateWS)
	mux.HandleFunc("GET /api/subjects", a.handleSubjects)
	mux.HandleFunc("GET /api/grades", a.handleGrades)
	return mux
}

// generateRequest is the payload for generation and validation.
type generateRequest struct {
	Subject    string `json:"subject"`
	Grade      string `json:"grade"`
	GradeLevel int    `json:"grade_level"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// document converts the request to a source document, resolving the
// grade level from the curriculum catalog when the client omits it.
func (a *API) document(req generateRequest) analyzer.SourceDocument {
	level := req.GradeLevel
	if level == 0 && a.catalog != nil {
		if l, ok := a.catalog.GradeLevel(req.Grade); ok {
			level = l
		}
	}
	return analyzer.SourceDocument{
		RawText:      req.Content,
		SubjectLabel: req.Subject,
		GradeLabel:   req.Grade,
		GradeLevel:   level,
		TitleHint:    req.Title,
	}
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
