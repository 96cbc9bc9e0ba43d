package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"docagent/internal/domain"
	"docagent/internal/llm"
	"docagent/internal/retrieval"
	"docagent/internal/router"
)

type stubRouter struct {
	decision router.Decision
	err      error
}

func (s stubRouter) Route(context.Context, string) (router.Decision, error) {
	return s.decision, s.err
}

type scriptedChat struct {
	response string
	err      error
	calls    [][]domain.Message
}

func (s *scriptedChat) Chat(_ context.Context, messages []domain.Message) (string, error) {
	s.calls = append(s.calls, messages)
	return s.response, s.err
}

func testPrompts() Prompts {
	return Prompts{Router: "route", Answer: "answer from evidence"}
}

func newTestAgent(r QueryRouter, chat domain.ChatClient, fragments ...domain.Fragment) *Agent {
	return New(r, retrieval.NewEngine(fragments, 3), chat, testPrompts(), nil)
}

func TestTurnDirectBypassesRetrieval(t *testing.T) {
	chat := &scriptedChat{response: "should never be used"}
	a := newTestAgent(stubRouter{decision: router.Direct{Answer: "42"}}, chat,
		domain.NewFragment("a.txt", "rome train"))

	turn := a.Turn(context.Background(), "what is the answer?")
	if turn.Answer != "42" {
		t.Errorf("Answer = %q, want %q", turn.Answer, "42")
	}
	if len(chat.calls) != 0 {
		t.Errorf("direct decision made %d model calls, want 0", len(chat.calls))
	}
	if turn.ToolQuery != "" || turn.Evidence != "" {
		t.Errorf("direct decision ran retrieval: %+v", turn)
	}
}

func TestTurnDirectPlaceholderAnswer(t *testing.T) {
	a := newTestAgent(stubRouter{decision: router.Direct{Answer: router.NoAnswerPlaceholder}}, &scriptedChat{})

	turn := a.Turn(context.Background(), "hm")
	if turn.Answer != router.NoAnswerPlaceholder {
		t.Errorf("Answer = %q, want placeholder", turn.Answer)
	}
}

func TestTurnSearchNoMatchesSendsSentinel(t *testing.T) {
	chat := &scriptedChat{response: "That is not in the journal."}
	a := newTestAgent(stubRouter{decision: router.Search{Query: "Japan"}}, chat,
		domain.NewFragment("a.txt", "rome train"))

	turn := a.Turn(context.Background(), "Did I visit Japan?")
	if turn.Answer != "That is not in the journal." {
		t.Errorf("Answer = %q", turn.Answer)
	}
	if turn.Evidence != retrieval.NoResultsText {
		t.Errorf("Evidence = %q, want sentinel", turn.Evidence)
	}
	if len(chat.calls) != 1 {
		t.Fatalf("got %d answer calls, want 1", len(chat.calls))
	}
	msgs := chat.calls[0]
	if msgs[0].Role != domain.RoleSystem || msgs[0].Content != "answer from evidence" {
		t.Errorf("system message = %+v", msgs[0])
	}
	user := msgs[1].Content
	if !strings.Contains(user, "Question: Did I visit Japan?") {
		t.Errorf("user content missing question: %q", user)
	}
	if !strings.Contains(user, retrieval.NoResultsText) {
		t.Errorf("user content missing NO_RESULTS sentinel: %q", user)
	}
}

func TestTurnSearchWithEvidence(t *testing.T) {
	chat := &scriptedChat{response: "You took the train to Rome. (a.txt)"}
	a := newTestAgent(stubRouter{decision: router.Search{Query: "train to rome"}}, chat,
		domain.NewFragment("a.txt", "rome train"))

	turn := a.Turn(context.Background(), "How did I get to Rome?")
	if turn.ToolQuery != "train to rome" {
		t.Errorf("ToolQuery = %q", turn.ToolQuery)
	}
	wantEvidence := "[source=a.txt score=2] rome train"
	if turn.Evidence != wantEvidence {
		t.Errorf("Evidence = %q, want %q", turn.Evidence, wantEvidence)
	}
	if !strings.Contains(chat.calls[0][1].Content, wantEvidence) {
		t.Errorf("answer call missing evidence: %q", chat.calls[0][1].Content)
	}
	if turn.Answer != "You took the train to Rome. (a.txt)" {
		t.Errorf("Answer = %q", turn.Answer)
	}
}

func TestTurnRouterFailuresBecomeText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "no JSON in output",
			err:  router.ErrNoJSON,
			want: "(router error)",
		},
		{
			name: "invalid JSON",
			err:  router.ErrBadJSON,
			want: "(router error)",
		},
		{
			name: "unknown action",
			err:  &router.UnknownActionError{Action: "BROWSE_WEB"},
			want: `(router error) unknown router action "BROWSE_WEB"`,
		},
		{
			name: "transport failure",
			err:  fmt.Errorf("%w: connection refused", llm.ErrTransport),
			want: "(error)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chat := &scriptedChat{}
			a := newTestAgent(stubRouter{err: tt.err}, chat)

			turn := a.Turn(context.Background(), "hi")
			if !strings.HasPrefix(turn.Answer, tt.want) {
				t.Errorf("Answer = %q, want prefix %q", turn.Answer, tt.want)
			}
			if len(chat.calls) != 0 {
				t.Errorf("failed routing still made %d model calls", len(chat.calls))
			}
		})
	}
}

func TestTurnAnswerCallFailureBecomesText(t *testing.T) {
	chat := &scriptedChat{err: fmt.Errorf("%w: 502 bad gateway", llm.ErrTransport)}
	a := newTestAgent(stubRouter{decision: router.Search{Query: "rome"}}, chat,
		domain.NewFragment("a.txt", "rome train"))

	turn := a.Turn(context.Background(), "Where did I go?")
	if !strings.HasPrefix(turn.Answer, "(error)") {
		t.Errorf("Answer = %q, want transport error text", turn.Answer)
	}
	// the trace up to the failure is still reported
	if turn.ToolQuery != "rome" || turn.Evidence == "" {
		t.Errorf("trace lost on failure: %+v", turn)
	}
}

func TestErrorTextClassification(t *testing.T) {
	if got := errorText(errors.New("boom")); !strings.HasPrefix(got, "(error)") {
		t.Errorf("unclassified error = %q", got)
	}
	if got := errorText(router.ErrNoJSON); !strings.Contains(got, "no JSON") {
		t.Errorf("ErrNoJSON text = %q", got)
	}
}
