// Package advisor turns an optional LLM into per-agent decisions. Every
// failure path yields a decision that tells the caller to use its own rule.
package advisor

import (
	"context"
	"log"
)

// Request is one agent's question for the advisor.
type Request struct {
	Agent   string
	AgentID string
	System  string
	User    string
}

// Completer is the transport the advisor asks. *Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type Advisor struct {
	completer Completer
}

// New wraps c. It returns nil when c is nil or reports itself disabled, and
// a nil *Advisor always answers RuleBased.
func New(c Completer) *Advisor {
	if c == nil {
		return nil
	}
	if e, ok := c.(interface{ Enabled() bool }); ok && !e.Enabled() {
		return nil
	}
	return &Advisor{completer: c}
}

// Advise blocks for at most the completer's timeout. It never returns an
// error: unavailable or malformed advice is reported through Decision.Kind.
func (a *Advisor) Advise(ctx context.Context, req Request) Decision {
	if a == nil || a.completer == nil {
		return Fallback()
	}
	text, err := a.completer.Complete(ctx, req.System, req.User)
	if err != nil {
		log.Printf("advisor: %s %s falling back to rules: %v", req.Agent, req.AgentID, err)
		return Fallback()
	}
	return Parse(req.Agent, text)
}
