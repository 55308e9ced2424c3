package prompt

import (
	"errors"
	"strings"
	"testing"
)

// allVars carries a value for every variable any built-in template uses, so
// each template can be rendered without knowing its exact variable set.
var allVars = map[string]interface{}{
	"Topic":      "climate change",
	"Side":       "for",
	"Scenario":   "used car purchase",
	"Offer":      "$5000",
	"History":    "Offer: a\nResponse: b",
	"Statement":  "the moon landing happened",
	"Research":   "summarized findings",
	"Argument":   "everyone agrees with me",
	"Bias":       "Confirmation Bias",
	"Biases":     "Confirmation Bias, Anchoring Bias",
	"Clause":     "party A shall indemnify party B",
	"JobDetails": "software engineer in London",
	"Proposal":   "100000",
}

func TestAllBuiltinsRender(t *testing.T) {
	r := NewSeeded()
	ids := r.ListPrompts()
	if len(ids) != r.Count() || r.Count() == 0 {
		t.Fatalf("registry inconsistent: %d ids, Count=%d", len(ids), r.Count())
	}

	for _, id := range ids {
		text, err := r.Render(id, allVars)
		if err != nil {
			t.Errorf("Render(%s) failed: %v", id, err)
			continue
		}
		if strings.Contains(text, "<no value>") || strings.Contains(text, "{{") {
			t.Errorf("Render(%s) left template artifacts: %q", id, text)
		}
	}
}

func TestRenderSubstitutesVariables(t *testing.T) {
	r := NewSeeded()
	text, err := r.Render("debate.arguments", map[string]interface{}{
		"Topic": "remote work",
		"Side":  "against",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(text, "remote work") || !strings.Contains(text, "against") {
		t.Errorf("substitution failed: %q", text)
	}
}

func TestRenderMissingRequiredVariable(t *testing.T) {
	r := NewSeeded()
	_, err := r.Render("debate.arguments", map[string]interface{}{"Topic": "x"})
	if err == nil {
		t.Fatal("expected an error for missing Side")
	}
	var missing *MissingArgumentError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingArgumentError, got %T: %v", err, err)
	}
	if missing.Variable != "Side" {
		t.Errorf("error names %q, want Side", missing.Variable)
	}
}

func TestRenderUnknownID(t *testing.T) {
	r := NewSeeded()
	_, err := r.Render("debate.nonexistent", allVars)
	if !errors.Is(err, ErrNoSuchSkill) {
		t.Fatalf("expected ErrNoSuchSkill, got %v", err)
	}
}

func TestRenderIgnoresExtraVariables(t *testing.T) {
	r := NewSeeded()
	vars := map[string]interface{}{"Topic": "x", "Unrelated": "y"}
	if _, err := r.Render("debate.open", vars); err != nil {
		t.Fatalf("extra variables must be tolerated: %v", err)
	}
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	r := NewRegistry()
	pt := &PromptTemplate{ID: "x.y", Category: "x", Template: "hello {{.Topic}}",
		Variables: []PromptVariable{{Name: "Topic", Required: true}}}
	if err := r.Register(pt); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if err := r.Register(pt); err == nil {
		t.Error("duplicate Register should fail")
	}
}
