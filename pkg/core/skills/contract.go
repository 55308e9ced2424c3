package skills

import (
	"context"
	"errors"
	"log"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/utils"
)

// ContractAnalysis runs a clause through four sequential model passes:
// initial analysis, detailed section breakdown, legal implications and
// sentiment. A failure at any pass emits the apology and stops; chunks
// already streamed stand.
type ContractAnalysis struct {
	base
}

func NewContractAnalysis(deps Deps) *ContractAnalysis {
	return &ContractAnalysis{base{deps: deps, name: "contract", keyword: "contract"}}
}

func (s *ContractAnalysis) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	clause := s.extractSubject(input)
	if clause == "" {
		return nil, chat.NewUserError("Please provide a contract clause to analyze.")
	}

	out.Emit("Analyzing the contract clause...\n\n")
	log.Printf("[contract] starting clause analysis")
	vars := map[string]interface{}{"Clause": clause}

	if err := s.stream(ctx, "contract.analyze", vars, out); err != nil {
		s.fail(out, "initial analysis", err)
		return nil, nil
	}

	out.Emit("\n\nProviding a detailed breakdown:\n\n")
	raw, err := s.collect(ctx, "contract.breakdown", vars)
	if err != nil {
		s.fail(out, "detailed breakdown", err)
		return nil, nil
	}
	sections, err := parseSections(utils.CleanMarkdown(raw))
	if errors.Is(err, ErrNoSections) {
		// The model ignored the section format; the raw text is still the
		// breakdown.
		out.Emit(raw + "\n\n")
	} else {
		for _, sec := range sections {
			out.Emit(sec.Title + ": \n" + sec.Body + "\n\n")
		}
	}

	out.Emit("Potential legal implications:\n\n")
	legal, err := s.collect(ctx, "contract.legal", vars)
	if err != nil {
		s.fail(out, "legal implications", err)
		return nil, nil
	}
	out.Emit(legal)

	out.Emit("\n\nSentiment analysis of the clause:\n\n")
	sentiment, err := s.collect(ctx, "contract.sentiment", vars)
	if err != nil {
		s.fail(out, "sentiment analysis", err)
		return nil, nil
	}
	out.Emit(sentiment)

	out.Emit(menu("Suggest improvements to the clause?", "Analyze another clause?"))
	return s.cont("await_action", map[string]string{"clause": clause}), nil
}

func (s *ContractAnalysis) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	switch c.Stage {
	case "await_action":
		switch {
		case chose(input, "1", "suggest", "improve"):
			vars := map[string]interface{}{"Clause": c.Context["clause"]}
			if err := s.stream(ctx, "contract.improve", vars, out); err != nil {
				s.fail(out, "improvement suggestions", err)
			}
			return nil, nil
		case chose(input, "2", "analyze", "another"):
			out.Emit("Okay, please provide the new contract clause.")
			return s.cont("await_clause", nil), nil
		default:
			out.Emit(chat.MsgWhatElse)
			return nil, nil
		}

	case "await_clause":
		return s.Start(ctx, input, out)

	default:
		out.Emit(chat.MsgWhatElse)
		return nil, nil
	}
}
