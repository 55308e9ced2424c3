package skills

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/scenario"
)

var scenarioIDPattern = regexp.MustCompile(`#(\d+)`)

// Negotiation runs a persistent negotiation simulation: the scenario and its
// offer/response history live in the scenario store so the exchange survives
// across turns and restarts.
type Negotiation struct {
	base
}

func NewNegotiation(deps Deps) *Negotiation {
	return &Negotiation{base{deps: deps, name: "negotiation", keyword: "negotiation"}}
}

func (s *Negotiation) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	subject := s.extractSubject(input)

	// An explicit "#<id>" token resumes an existing scenario; otherwise a
	// new one is created for the described topic.
	var sc *scenario.Scenario
	if m := scenarioIDPattern.FindStringSubmatch(subject); m != nil {
		id, _ := strconv.ParseInt(m[1], 10, 64)
		existing, err := s.deps.Scenarios.Get(ctx, id)
		if err != nil {
			if err == scenario.ErrNotFound {
				return nil, chat.NewUserError("I couldn't find negotiation scenario #%d.", id)
			}
			s.fail(out, "scenario lookup", err)
			return nil, nil
		}
		sc = existing
	} else {
		if subject == "" {
			return nil, chat.NewUserError("Please describe the negotiation scenario.")
		}
		created, err := s.deps.Scenarios.Create(ctx, subject)
		if err != nil {
			s.fail(out, "scenario create", err)
			return nil, nil
		}
		sc = created
		out.Emit(fmt.Sprintf("Starting negotiation scenario #%d.\n\n", sc.ID))
	}

	if err := s.stream(ctx, "negotiation.scenario", map[string]interface{}{"Scenario": sc.Topic}, out); err != nil {
		s.fail(out, "scenario generation", err)
		return nil, nil
	}
	out.Emit("\n\nWhat's your opening offer or position?")
	return s.cont("await_offer", s.scenarioContext(sc)), nil
}

func (s *Negotiation) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	topic := c.Context["topic"]
	id, _ := strconv.ParseInt(c.Context["scenario_id"], 10, 64)

	switch c.Stage {
	case "await_offer":
		offer := strings.TrimSpace(input)
		vars := map[string]interface{}{"Scenario": topic, "Offer": offer}
		analysis, err := s.streamCollect(ctx, "negotiation.analyze_offer", vars, out)
		if err != nil {
			s.fail(out, "offer analysis", err)
			return nil, nil
		}
		s.record(ctx, id, offer, analysis)
		out.Emit(menu("Continue the negotiation?", "Receive advice on negotiation tactics?"))
		return s.cont("await_action", c.Context), nil

	case "await_action":
		switch {
		case chose(input, "1", "continue"):
			out.Emit("Okay, what's your next move or counter-offer?")
			return s.cont("await_counter", c.Context), nil
		case chose(input, "2", "advice", "tactics"):
			if err := s.stream(ctx, "negotiation.tactics", map[string]interface{}{"Scenario": topic}, out); err != nil {
				s.fail(out, "tactics", err)
			}
			return nil, nil
		default:
			out.Emit(chat.MsgWhatElse)
			return nil, nil
		}

	case "await_counter":
		offer := strings.TrimSpace(input)
		sc, err := s.deps.Scenarios.Get(ctx, id)
		if err != nil {
			s.fail(out, "scenario lookup", err)
			return nil, nil
		}
		vars := map[string]interface{}{
			"Scenario": sc.Topic,
			"History":  formatHistory(sc),
			"Offer":    offer,
		}
		reply, err := s.streamCollect(ctx, "negotiation.continue", vars, out)
		if err != nil {
			s.fail(out, "negotiation reply", err)
			return nil, nil
		}
		s.record(ctx, id, offer, reply)
		out.Emit(menu("Continue the negotiation?", "Receive advice on negotiation tactics?"))
		return s.cont("await_action", c.Context), nil

	default:
		out.Emit(chat.MsgWhatElse)
		return nil, nil
	}
}

func (s *Negotiation) scenarioContext(sc *scenario.Scenario) map[string]string {
	return map[string]string{
		"scenario_id": strconv.FormatInt(sc.ID, 10),
		"topic":       sc.Topic,
	}
}

// record appends one exchange. A storage failure loses history but should
// not kill a turn whose reply already streamed.
func (s *Negotiation) record(ctx context.Context, id int64, offer, response string) {
	if err := s.deps.Scenarios.AppendExchange(ctx, id, offer, response); err != nil {
		log.Printf("[negotiation] append exchange for scenario %d failed: %v", id, err)
	}
}

func formatHistory(sc *scenario.Scenario) string {
	if sc.Turns() == 0 {
		return "(no exchanges yet)"
	}
	var sb strings.Builder
	for i := 0; i < sc.Turns(); i++ {
		fmt.Fprintf(&sb, "Offer: %s\nResponse: %s\n", sc.UserOffers[i], sc.BotResponses[i])
	}
	return strings.TrimRight(sb.String(), "\n")
}
