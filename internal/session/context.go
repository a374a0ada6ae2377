package session

import (
	"errors"

	"github.com/shahar-caura/sayso/internal/catalog"
	"github.com/shahar-caura/sayso/internal/intent"
	"github.com/shahar-caura/sayso/internal/skill"
)

// Context remembers the single previous successful dispatch: the intent,
// the command it resolved to, and the skill that ran it. One slot, no
// history, no expiry; every update replaces the whole triple.
//
// Context is not synchronized. The orchestrator owns it and touches it
// from one goroutine only.
type Context struct {
	has        bool
	lastIntent intent.Intent
	lastCmd    catalog.Command
	lastSkill  skill.Skill
}

// New returns an empty Context.
func New() *Context { return &Context{} }

// Update replaces the remembered turn. All three values are required;
// on error nothing is written, so a partial turn can never be observed.
func (c *Context) Update(in intent.Intent, cmd catalog.Command, sk skill.Skill) error {
	if !in.Resolved() {
		return errors.New("session: intent must be resolved")
	}
	if cmd.Name == "" {
		return errors.New("session: command must have a name")
	}
	if sk == nil {
		return errors.New("session: skill must not be nil")
	}

	c.has = true
	c.lastIntent = in
	c.lastCmd = cmd
	c.lastSkill = sk
	return nil
}

// HasContext reports whether a previous turn is remembered.
func (c *Context) HasContext() bool { return c.has }

// LastIntent returns the remembered intent, zero when empty.
func (c *Context) LastIntent() intent.Intent { return c.lastIntent }

// LastCommand returns the remembered command, zero when empty.
func (c *Context) LastCommand() catalog.Command { return c.lastCmd }

// LastSkill returns the remembered skill, nil when empty.
func (c *Context) LastSkill() skill.Skill { return c.lastSkill }

// Clear forgets the remembered turn.
func (c *Context) Clear() { *c = Context{} }
