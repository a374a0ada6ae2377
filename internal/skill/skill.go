package skill

import (
	"context"

	"github.com/shahar-caura/sayso/internal/intent"
)

// Skill executes one class of resolved intents.
type Skill interface {
	// Name identifies the skill in logs and the session context.
	Name() string

	// CanHandle reports whether the skill claims this intent.
	CanHandle(in intent.Intent) bool

	// Execute carries out the intent's command.
	Execute(ctx context.Context, in intent.Intent) error
}

// Registry dispatches intents to the first skill that claims them.
// Registration order is precedence order.
type Registry struct {
	skills []Skill
}

// NewRegistry builds a Registry over the given skills, in order.
func NewRegistry(skills ...Skill) *Registry {
	return &Registry{skills: skills}
}

// Find returns the first registered skill that can handle in.
func (r *Registry) Find(in intent.Intent) (Skill, bool) {
	for _, s := range r.skills {
		if s.CanHandle(in) {
			return s, true
		}
	}
	return nil, false
}
