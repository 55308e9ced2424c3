package skills

import (
	"context"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
)

// FactCheck researches a statement and renders a verdict grounded in the
// research. Two sequential model calls: the second prompt embeds the first
// call's full output.
type FactCheck struct {
	base
}

func NewFactCheck(deps Deps) *FactCheck {
	return &FactCheck{base{deps: deps, name: "factcheck", keyword: "fact-check"}}
}

func (s *FactCheck) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	statement := s.extractSubject(input)
	if statement == "" {
		return nil, chat.NewUserError("Please provide a statement to fact-check.")
	}

	out.Emit("Fact-checking the statement...\n\n")

	research, err := s.streamCollect(ctx, "factcheck.research", map[string]interface{}{"Statement": statement}, out)
	if err != nil {
		s.fail(out, "research", err)
		return nil, nil
	}

	out.Emit("\n\n")
	vars := map[string]interface{}{"Statement": statement, "Research": research}
	if err := s.stream(ctx, "factcheck.verdict", vars, out); err != nil {
		s.fail(out, "verdict", err)
		return nil, nil
	}

	out.Emit(menu("Explore additional sources?", "Fact-check another statement?"))
	return s.cont("await_action", map[string]string{"statement": statement}), nil
}

func (s *FactCheck) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	switch c.Stage {
	case "await_action":
		switch {
		case chose(input, "1", "explore", "sources"):
			out.Emit("Okay, here are some additional sources to consider.\n\n")
			vars := map[string]interface{}{"Statement": c.Context["statement"]}
			if err := s.stream(ctx, "factcheck.sources", vars, out); err != nil {
				s.fail(out, "sources", err)
			}
			return nil, nil
		case chose(input, "2", "another", "fact-check"):
			out.Emit("Okay, please provide the new statement.")
			return s.cont("await_statement", nil), nil
		default:
			out.Emit(chat.MsgWhatElse)
			return nil, nil
		}

	case "await_statement":
		return s.Start(ctx, input, out)

	default:
		out.Emit(chat.MsgWhatElse)
		return nil, nil
	}
}
