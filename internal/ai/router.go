package ai

import (
	"context"
	"fmt"
	"log/slog"
)

// Router dispatches completion requests to a primary provider and falls
// back to the remaining providers in registration order on failure.
type Router struct {
	providers map[string]Provider
	order     []string
	log       *slog.Logger
}

// NewRouter creates a router with no providers registered.
func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Router{
		providers: make(map[string]Provider),
		log:       log,
	}
}

// Register adds a named provider. Registration order determines the
// fallback sequence.
func (r *Router) Register(name string, p Provider) {
	if _, ok := r.providers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
}

// HasProvider reports whether a provider is registered under name.
func (r *Router) HasProvider(name string) bool {
	_, ok := r.providers[name]
	return ok
}

// Complete tries each registered provider in order until one succeeds.
func (r *Router) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error) {
	if len(r.order) == 0 {
		return CompletionResponse{}, fmt.Errorf("no providers registered")
	}

	var lastErr error
	for _, name := range r.order {
		resp, err := r.providers[name].Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		r.log.Warn("provider failed, trying next",
			slog.String("provider", name),
			slog.String("error", err.Error()))
		lastErr = err

		if ctx.Err() != nil {
			return CompletionResponse{}, ctx.Err()
		}
	}
	return CompletionResponse{}, fmt.Errorf("all providers failed: %w", lastErr)
}

// Models returns the models of every registered provider.
func (r *Router) Models() []ModelInfo {
	var all []ModelInfo
	for _, name := range r.order {
		all = append(all, r.providers[name].Models()...)
	}
	return all
}

// HealthCheck succeeds if at least one provider is healthy.
func (r *Router) HealthCheck(ctx context.Context) error {
	if len(r.order) == 0 {
		return fmt.Errorf("no providers registered")
	}
	var lastErr error
	for _, name := range r.order {
		if err := r.providers[name].HealthCheck(ctx); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("no healthy providers: %w", lastErr)
}
