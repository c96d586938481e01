package game

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/mwillard/gameroom/internal/model"
)

// Registry maps game ids to templates. Registration happens once at startup
// per game; lookup is on the critical path of every action application.
type Registry struct {
	mu        sync.RWMutex
	templates map[model.GameID]Template
	logger    *slog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		templates: make(map[model.GameID]Template),
		logger:    logger,
	}
}

// Register adds a template, keyed by its metadata id. Re-registering the
// same id overwrites the previous entry; this is logged as a warning, never
// an error.
func (r *Registry) Register(t Template) {
	id := t.Metadata().ID

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[id]; exists {
		r.logger.Warn("game template re-registered, overwriting",
			slog.String("game_id", string(id)),
		)
	}
	r.templates[id] = t
}

// Get returns the template for the given id
func (r *Registry) Get(id model.GameID) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	return t, ok
}

// List returns all registered templates, ordered by id
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	templates := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		templates = append(templates, t)
	}
	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Metadata().ID < templates[j].Metadata().ID
	})
	return templates
}
