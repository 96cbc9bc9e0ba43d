// Package agent sequences the per-turn protocol: route the query, retrieve
// evidence when the router asks for it, then generate a grounded answer.
package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"docagent/internal/domain"
	"docagent/internal/llm"
	"docagent/internal/retrieval"
	"docagent/internal/router"
)

// QueryRouter classifies a user query before answering.
type QueryRouter interface {
	Route(ctx context.Context, userText string) (router.Decision, error)
}

// Turn is the outcome of one agent turn. Answer is always set; the trace
// fields are filled in as far as the turn progressed so the console can show
// the decision, the tool call, and its result.
type Turn struct {
	Decision  string // router decision, human readable
	ToolQuery string // retrieval query, when retrieval ran
	Evidence  string // rendered retrieval output handed to the answer call
	Answer    string // final user-facing text
}

// Agent runs one strictly sequential turn at a time. Any router or
// transport failure degrades to visible answer text; nothing propagates
// past Turn in interactive use.
type Agent struct {
	router  QueryRouter
	engine  *retrieval.Engine
	chat    domain.ChatClient
	prompts Prompts
	log     *zap.Logger
}

// New wires an agent. A nil logger is replaced with a no-op logger.
func New(qr QueryRouter, engine *retrieval.Engine, chat domain.ChatClient, prompts Prompts, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{router: qr, engine: engine, chat: chat, prompts: prompts, log: log}
}

// Turn executes one turn for userText and always returns a result whose
// Answer is printable as-is.
func (a *Agent) Turn(ctx context.Context, userText string) Turn {
	decision, err := a.router.Route(ctx, userText)
	if err != nil {
		a.log.Warn("routing failed", zap.Error(err))
		return Turn{Answer: errorText(err)}
	}

	switch d := decision.(type) {
	case router.Direct:
		a.log.Info("router decision", zap.String("action", router.ActionDirect))
		return Turn{Decision: d.Describe(), Answer: d.Answer}

	case router.Search:
		a.log.Info("router decision",
			zap.String("action", router.ActionSearch),
			zap.String("query", d.Query))
		result := a.engine.Search(d.Query)
		evidence := result.Render()
		a.log.Debug("retrieval finished",
			zap.Int("matches", len(result.Matches)),
			zap.Bool("no_results", result.NoResults()))

		answer, err := a.chat.Chat(ctx, []domain.Message{
			{Role: domain.RoleSystem, Content: a.prompts.Answer},
			{Role: domain.RoleUser, Content: composeAnswerInput(userText, evidence)},
		})
		turn := Turn{Decision: d.Describe(), ToolQuery: d.Query, Evidence: evidence}
		if err != nil {
			a.log.Warn("answer generation failed", zap.Error(err))
			turn.Answer = errorText(err)
			return turn
		}
		turn.Answer = answer
		return turn

	default:
		// unreachable while Decision stays a closed sum
		return Turn{Answer: fmt.Sprintf("(router error) unrecognized decision %T", decision)}
	}
}

// composeAnswerInput joins the original question with the rendered evidence
// (or the NO_RESULTS sentinel) as the answer call's user turn.
func composeAnswerInput(userText, evidence string) string {
	return fmt.Sprintf("Question: %s\n\nRetrieved:\n%s", userText, evidence)
}

// errorText converts a per-turn failure into the turn's visible answer.
func errorText(err error) string {
	var unknown *router.UnknownActionError
	switch {
	case errors.Is(err, llm.ErrTransport):
		return fmt.Sprintf("(error) %v", err)
	case errors.As(err, &unknown):
		return fmt.Sprintf("(router error) %v", unknown)
	case errors.Is(err, router.ErrNoJSON), errors.Is(err, router.ErrBadJSON):
		return fmt.Sprintf("(router error) %v", err)
	default:
		return fmt.Sprintf("(error) %v", err)
	}
}
