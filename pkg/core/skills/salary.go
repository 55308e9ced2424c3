package skills

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"argument_negotiation_bot/pkg/core/chat"
	"argument_negotiation_bot/pkg/core/convo"
	"argument_negotiation_bot/pkg/core/salarydata"
)

var (
	jobTitlePattern = regexp.MustCompile(`(?i)job title is\s*([^.,;]+)`)
	locationPattern = regexp.MustCompile(`(?i)location is\s*([^.,;]+)`)
	// Conversational alternates: "I'm a software engineer in London",
	// or just "Software Engineer in New York".
	roleAltPattern     = regexp.MustCompile(`(?i)\bi'?m an?\s+([^.,;]+?)(?:\s+in\s+|[.,;]|$)`)
	locationAltPattern = regexp.MustCompile(`(?i)\bin\s+([^.,;]+)`)
	plainPattern       = regexp.MustCompile(`(?i)^([^.,;]+?)\s+in\s+([^.,;]+)$`)
)

// SalaryNegotiation gives negotiation advice for a role, enriches it with
// market salary data when a job title and location can be read from the
// input, and simulates the employer side on request.
type SalaryNegotiation struct {
	base
}

func NewSalaryNegotiation(deps Deps) *SalaryNegotiation {
	return &SalaryNegotiation{base{deps: deps, name: "salary", keyword: "salary"}}
}

func (s *SalaryNegotiation) Start(ctx context.Context, input string, out chat.Emitter) (*convo.Continuation, error) {
	details := s.extractSubject(input)
	if details == "" {
		details = strings.TrimSpace(input)
	}

	out.Emit("Analyzing the job details and preparing negotiation advice...\n\n")

	if err := s.stream(ctx, "salary.advice", map[string]interface{}{"JobDetails": details}, out); err != nil {
		s.fail(out, "advice", err)
		return nil, nil
	}

	s.emitSalaryInsights(ctx, details, out)

	out.Emit(menu("Practice a negotiation scenario?", "Get advice on specific negotiation points?"))
	return s.cont("await_action", map[string]string{"details": details}), nil
}

func (s *SalaryNegotiation) Resume(ctx context.Context, c *convo.Continuation, input string, out chat.Emitter) (*convo.Continuation, error) {
	details := c.Context["details"]
	switch c.Stage {
	case "await_action":
		switch {
		case chose(input, "1", "practice"):
			out.Emit("Okay, let's practice. What's your proposed salary?")
			return s.cont("await_proposal", c.Context), nil
		case chose(input, "2", "advice"):
			out.Emit("Sure, tell me about the specific negotiation point you need advice on.")
			return s.cont("await_point", c.Context), nil
		default:
			out.Emit(chat.MsgWhatElse)
			return nil, nil
		}

	case "await_proposal":
		vars := map[string]interface{}{"JobDetails": details, "Proposal": strings.TrimSpace(input)}
		if err := s.stream(ctx, "salary.simulate", vars, out); err != nil {
			s.fail(out, "negotiation simulation", err)
		}
		return nil, nil

	case "await_point":
		combined := details + "\nSpecific negotiation point: " + strings.TrimSpace(input)
		if err := s.stream(ctx, "salary.advice", map[string]interface{}{"JobDetails": combined}, out); err != nil {
			s.fail(out, "point advice", err)
		}
		return nil, nil

	default:
		out.Emit(chat.MsgWhatElse)
		return nil, nil
	}
}

// emitSalaryInsights fetches market data when the input names a job title and
// location. Every failure path renders as user-facing text; nothing here
// aborts the turn.
func (s *SalaryNegotiation) emitSalaryInsights(ctx context.Context, details string, out chat.Emitter) {
	jobTitle, location := extractJobAndLocation(details)
	if jobTitle == "" || location == "" {
		out.Emit("\n\nSalary Insights: tell me your job title and location " +
			"(for example \"my job title is Software Engineer and the location is London\") " +
			"and I can look up market salary data.\n")
		return
	}

	quote, err := s.deps.Salary.Fetch(ctx, jobTitle, location)
	if err != nil {
		out.Emit(fmt.Sprintf("\n\nSalary Insights: %s\n", salaryErrorText(err)))
		return
	}
	out.Emit(fmt.Sprintf("\n\nSalary Insights:\nAverage Salary: $%d %s\n", quote.AverageSalary, quote.Currency))
}

// extractJobAndLocation reads a job title and location from free text. The
// explicit "job title is X" / "location is X" forms win; conversational
// alternates fill in whatever is still missing. Empty strings mean not found.
func extractJobAndLocation(details string) (jobTitle, location string) {
	if m := jobTitlePattern.FindStringSubmatch(details); m != nil {
		jobTitle = strings.TrimSpace(m[1])
	}
	if m := locationPattern.FindStringSubmatch(details); m != nil {
		location = strings.TrimSpace(m[1])
	}
	if jobTitle == "" {
		if m := roleAltPattern.FindStringSubmatch(details); m != nil {
			jobTitle = strings.TrimSpace(m[1])
		}
	}
	if location == "" {
		if m := locationAltPattern.FindStringSubmatch(details); m != nil {
			location = strings.TrimSpace(m[1])
		}
	}
	if jobTitle == "" {
		if m := plainPattern.FindStringSubmatch(details); m != nil {
			jobTitle = strings.TrimSpace(m[1])
			location = strings.TrimSpace(m[2])
		}
	}
	return jobTitle, location
}

func salaryErrorText(err error) string {
	switch {
	case errors.Is(err, salarydata.ErrInvalidParams):
		return "that job title or location wasn't accepted by the salary data service."
	case errors.Is(err, salarydata.ErrBadCredentials):
		return "the salary data service is not configured."
	case errors.Is(err, salarydata.ErrRateLimited):
		return "the salary data service is rate limited right now. Please try again shortly."
	case errors.Is(err, salarydata.ErrNoData):
		return "no salary data was found for that role and location."
	default:
		return "salary data is temporarily unavailable."
	}
}
