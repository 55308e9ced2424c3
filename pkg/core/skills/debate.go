package skills

import (
	"context"
	"strings"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
)

// Debate generates opposing viewpoints on a topic, argues the user's chosen
// side, and produces counterarguments on request.
type Debate struct {
	base
}

func NewDebate(deps Deps) *Debate {
	return &Debate{base{deps: deps, name: "debate", keyword: "debate"}}
}

func (s *Debate) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	topic := s.extractSubject(input)
	if topic == "" {
		return nil, chat.NewUserError("Please provide a topic to debate.")
	}

	if err := s.stream(ctx, "debate.open", map[string]interface{}{"Topic": topic}, out); err != nil {
		s.fail(out, "opening viewpoints", err)
		return nil, nil
	}
	out.Emit("\n\nWhich side would you like to argue for?")
	return s.cont("await_side", map[string]string{"topic": topic}), nil
}

func (s *Debate) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	topic := c.Context["topic"]
	switch c.Stage {
	case "await_side":
		side := strings.ToLower(strings.TrimSpace(input))
		if side == "" {
			out.Emit("Which side would you like to argue for?")
			return s.cont("await_side", c.Context), nil
		}
		vars := map[string]interface{}{"Topic": topic, "Side": side}
		if err := s.stream(ctx, "debate.arguments", vars, out); err != nil {
			s.fail(out, "argument generation", err)
			return nil, nil
		}
		out.Emit(menu("Continue the debate?", "Explore counterarguments?"))
		return s.cont("await_action", map[string]string{"topic": topic, "side": side}), nil

	case "await_action":
		switch {
		case chose(input, "1", "continue"):
			out.Emit("Okay, let's continue. What's your next point?")
			return s.cont("await_point", c.Context), nil
		case chose(input, "2", "counter"):
			vars := map[string]interface{}{"Topic": topic, "Side": c.Context["side"]}
			if err := s.stream(ctx, "debate.counter", vars, out); err != nil {
				s.fail(out, "counterargument generation", err)
			}
			return nil, nil
		default:
			out.Emit(chat.MsgWhatElse)
			return nil, nil
		}

	case "await_point":
		// The user pressed their side with a new point; answer from the
		// opposing side to keep the debate alive.
		vars := map[string]interface{}{"Topic": topic, "Side": c.Context["side"]}
		if err := s.stream(ctx, "debate.counter", vars, out); err != nil {
			s.fail(out, "debate reply", err)
			return nil, nil
		}
		out.Emit(menu("Continue the debate?", "Explore counterarguments?"))
		return s.cont("await_action", c.Context), nil

	default:
		out.Emit(chat.MsgWhatElse)
		return nil, nil
	}
}
