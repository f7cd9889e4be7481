package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/jln-hub/lessongen/internal/generator"
)

// wsMessage is a websocket frame sent to the client. Type is
// "progress", "lesson", or "error".
type wsMessage struct {
	Type     string                   `json:"type"`
	Progress *generator.ProgressEvent `json:"progress,omitempty"`
	Lesson   *generator.Lesson        `json:"lesson,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

// handleGenerateWS runs one generation over a websocket, streaming
// progress events before the final lesson. The client sends a single
// generateRequest and receives frames until the connection closes.
func (a *API) handleGenerateWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		a.log.Warn("websocket accept failed", slog.String("error", err.Error()))
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithTimeout(r.Context(), generateTimeout)
	defer cancel()

	var req generateRequest
	if err := wsjson.Read(ctx, conn, &req); err != nil {
		return
	}
	if req.Content == "" {
		_ = wsjson.Write(ctx, conn, wsMessage{Type: "error", Error: "content is required"})
		conn.Close(websocket.StatusPolicyViolation, "content is required")
		return
	}

	progress := func(ev generator.ProgressEvent) {
		_ = wsjson.Write(ctx, conn, wsMessage{Type: "progress", Progress: &ev})
	}

	lesson, err := a.svc.Generate(ctx, a.document(req), progress)
	if err != nil {
		_ = wsjson.Write(ctx, conn, wsMessage{Type: "error", Error: err.Error()})
		conn.Close(websocket.StatusInternalError, "generation failed")
		return
	}

	if err := wsjson.Write(ctx, conn, wsMessage{Type: "lesson", Lesson: lesson}); err != nil {
		return
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
