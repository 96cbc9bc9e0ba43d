// Package router classifies a user query as needing document search or a
// direct answer, via a single model call with a strict one-line JSON output
// contract.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"docagent/internal/domain"
)

// Decision is the router's classification of one user query. The type is a
// closed sum: Search and Direct are the only cases, and an unrecognized
// model action surfaces as *UnknownActionError at the parse boundary.
type Decision interface {
	isDecision()
	// Describe renders the decision for the console trace.
	Describe() string
}

// Search instructs the caller to retrieve evidence with Query before
// answering.
type Search struct {
	Query string
}

// Direct carries an answer supplied by the router model itself, bypassing
// retrieval.
type Direct struct {
	Answer string
}

func (Search) isDecision() {}
func (Direct) isDecision() {}

func (s Search) Describe() string { return fmt.Sprintf("%s query=%q", ActionSearch, s.Query) }
func (Direct) Describe() string   { return ActionDirect }

// Wire-format action discriminators the model is instructed to emit.
const (
	ActionSearch = "SEARCH_DOCS"
	ActionDirect = "NO_SEARCH"
)

// NoAnswerPlaceholder stands in for a direct decision whose answer field
// was absent.
const NoAnswerPlaceholder = "(no answer provided)"

var (
	// ErrNoJSON means the model response contained no JSON object at all.
	ErrNoJSON = errors.New("model output contains no JSON object")
	// ErrBadJSON means a brace-delimited span was found but none of it
	// decodes as a JSON object.
	ErrBadJSON = errors.New("model output contains invalid JSON")
)

// UnknownActionError reports a decision whose action discriminator was
// missing or unrecognized.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	if e.Action == "" {
		return "router decision has no action"
	}
	return fmt.Sprintf("unknown router action %q", e.Action)
}

// Router performs the classification with exactly one model call per query.
type Router struct {
	chat   domain.ChatClient
	prompt string
}

// New creates a router using the given chat client and system instruction.
func New(chat domain.ChatClient, systemPrompt string) *Router {
	return &Router{chat: chat, prompt: systemPrompt}
}

// Route classifies userText. Transport errors from the chat client pass
// through unwrapped; parse failures return the router error taxonomy.
func (r *Router) Route(ctx context.Context, userText string) (Decision, error) {
	raw, err := r.chat.Chat(ctx, []domain.Message{
		{Role: domain.RoleSystem, Content: r.prompt},
		{Role: domain.RoleUser, Content: userText},
	})
	if err != nil {
		return nil, err
	}
	return Parse(raw, userText)
}

// decisionWire is the JSON shape the router prompt demands.
type decisionWire struct {
	Action string `json:"action"`
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// Parse extracts the first well-formed top-level JSON object from raw model
// output and maps it onto a Decision. userText backs the query fallback for
// a search decision missing its query field.
func Parse(raw, userText string) (Decision, error) {
	obj, err := firstJSONObject(raw)
	if err != nil {
		return nil, err
	}
	var wire decisionWire
	if err := json.Unmarshal(obj, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}

	switch wire.Action {
	case ActionSearch:
		query := wire.Query
		if query == "" {
			query = userText
		}
		return Search{Query: query}, nil
	case ActionDirect:
		answer := wire.Answer
		if answer == "" {
			answer = NoAnswerPlaceholder
		}
		return Direct{Answer: answer}, nil
	default:
		return nil, &UnknownActionError{Action: wire.Action}
	}
}

// firstJSONObject scans raw for '{' positions and incrementally decodes
// from each until one well-formed top-level object is found. This bounds
// the greedy regex extraction the output contract would otherwise need:
// verbose model output with several brace spans still yields the first
// valid object.
func firstJSONObject(raw string) (json.RawMessage, error) {
	sawBrace := false
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}
		sawBrace = true
		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		var obj json.RawMessage
		if err := dec.Decode(&obj); err == nil {
			return obj, nil
		}
	}
	if !sawBrace {
		return nil, ErrNoJSON
	}
	return nil, ErrBadJSON
}
