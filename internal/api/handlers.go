package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jln-hub/lessongen/internal/generator"
	"github.com/jln-hub/lessongen/internal/store"
)

const generateTimeout = 2 * time.Minute

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	failures := map[string]string{}
	for name, check := range a.ready {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":   "unavailable",
			"failures": failures,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (a *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeGenerateRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	lesson, err := a.svc.Generate(ctx, a.document(req), nil)
	if err != nil {
		a.log.Warn("generation failed",
			slog.String("title", req.Title),
			slog.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, lesson)
}

func (a *API) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := a.decodeGenerateRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, generator.ValidateDocument(a.document(req)))
}

func (a *API) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := a.svc.Lesson(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lesson not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (a *API) handleSubjects(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		writeError(w, http.StatusNotFound, "no curriculum catalog configured")
		return
	}
	writeJSON(w, http.StatusOK, a.catalog.Subjects())
}

func (a *API) handleGrades(w http.ResponseWriter, r *http.Request) {
	if a.catalog == nil {
		writeError(w, http.StatusNotFound, "no curriculum catalog configured")
		return
	}
	writeJSON(w, http.StatusOK, a.catalog.Grades())
}

func (a *API) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (generateRequest, bool) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return generateRequest{}, false
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return generateRequest{}, false
	}
	return req, true
}
