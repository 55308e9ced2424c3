package skills

import (
	"context"
	"log"
	"strings"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/utils"
)

// CommonBiases is the canonical label set the detector recognizes.
var CommonBiases = []string{
	"Confirmation Bias",
	"Anchoring Bias",
	"Availability Heuristic",
	"Framing Effect",
	"Dunning-Kruger Effect",
	"Bandwagon Effect",
	"Negativity Bias",
	"Sunk Cost Fallacy",
}

// BiasDetection analyzes an argument for cognitive biases, explains each
// detected bias, and suggests mitigation strategies. Detection results are
// memoized per exact argument in a bounded LRU.
type BiasDetection struct {
	base
}

func NewBiasDetection(deps Deps) *BiasDetection {
	return &BiasDetection{base{deps: deps, name: "bias", keyword: "cognitive bias"}}
}

func (s *BiasDetection) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	argument := s.extractSubject(input)
	if argument == "" {
		return nil, chat.NewUserError("Please provide an argument to analyze.")
	}

	out.Emit("Analyzing the argument for cognitive biases...\n\n")

	if err := s.stream(ctx, "bias.analyze", map[string]interface{}{"Argument": argument}, out); err != nil {
		s.fail(out, "bias analysis", err)
		return nil, nil
	}

	biases := s.detectBiases(ctx, argument)
	if len(biases) == 0 {
		out.Emit("\n\nNo common cognitive biases detected in the argument.\n\n")
		return nil, nil
	}

	out.Emit("\n\nDetailed bias analysis:\n\n")
	for _, bias := range biases {
		vars := map[string]interface{}{"Bias": bias, "Argument": argument}
		explanation, err := s.collect(ctx, "bias.explain", vars)
		if err != nil {
			log.Printf("[bias] explain %q failed: %v", bias, err)
			explanation = "An error occurred while explaining the bias."
		}
		out.Emit(bias + ": \n" + explanation + "\n\n")
	}

	out.Emit(menu("Explore strategies to mitigate these biases?", "Analyze another argument?"))
	return s.cont("await_action", map[string]string{
		"argument": argument,
		"biases":   strings.Join(biases, ", "),
	}), nil
}

func (s *BiasDetection) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	switch c.Stage {
	case "await_action":
		switch {
		case chose(input, "1", "mitigate"):
			vars := map[string]interface{}{"Biases": c.Context["biases"]}
			if err := s.stream(ctx, "bias.mitigate", vars, out); err != nil {
				s.fail(out, "mitigation strategies", err)
			}
			return nil, nil
		case chose(input, "2", "analyze", "another"):
			out.Emit("Okay, please provide the new argument.")
			return s.cont("await_argument", nil), nil
		default:
			out.Emit(chat.MsgWhatElse)
			return nil, nil
		}

	case "await_argument":
		return s.Start(ctx, input, out)

	default:
		out.Emit(chat.MsgWhatElse)
		return nil, nil
	}
}

// detectBiases returns the canonical labels present in the argument. Results
// are memoized keyed by the exact argument text, so an identical argument
// never triggers a second detection call. A model failure yields an empty
// list rather than an error.
func (s *BiasDetection) detectBiases(ctx context.Context, argument string) []string {
	if cached, ok := s.deps.BiasCache.Get(argument); ok {
		return cached
	}

	raw, err := s.collect(ctx, "bias.detect", map[string]interface{}{"Argument": argument})
	if err != nil {
		log.Printf("[bias] detection failed: %v", err)
		return nil
	}

	detected := canonicalBiases(raw)
	s.deps.BiasCache.Add(argument, detected)
	return detected
}

// canonicalBiases maps a detection response onto the known label set. The
// response is asked for as a JSON array; when that fails to parse even after
// repair, a substring scan over the raw text catches prose answers.
func canonicalBiases(response string) []string {
	var labels []string
	if err := utils.SmartParse(response, &labels); err == nil {
		var detected []string
		for _, label := range labels {
			if canon, ok := matchBias(label); ok {
				detected = append(detected, canon)
			}
		}
		if len(detected) > 0 {
			return detected
		}
	}

	lower := strings.ToLower(response)
	var detected []string
	for _, bias := range CommonBiases {
		if strings.Contains(lower, strings.ToLower(bias)) {
			detected = append(detected, bias)
		}
	}
	return detected
}

func matchBias(label string) (string, bool) {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, bias := range CommonBiases {
		if label == strings.ToLower(bias) {
			return bias, true
		}
	}
	return "", false
}
