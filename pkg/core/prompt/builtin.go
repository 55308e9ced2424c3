package prompt

// Seed registers the built-in prompt library covering every skill and
// sub-stage. Called once at process start; the registry is immutable after.
func Seed(r *Registry) error {
	builtins := []*PromptTemplate{
		// --- Debate ---
		{
			ID:       "debate.open",
			Category: "debate",
			Template: "Generate two opposing viewpoints on the topic: {{.Topic}}. " +
				"Provide clear arguments for both sides, citing relevant facts or examples.",
			Variables: []PromptVariable{{Name: "Topic", Required: true}},
		},
		{
			ID:        "debate.arguments",
			Category:  "debate",
			Template:  "Generate strong arguments for the {{.Side}} side of the debate on: {{.Topic}}",
			Variables: []PromptVariable{{Name: "Side", Required: true}, {Name: "Topic", Required: true}},
		},
		{
			ID:        "debate.counter",
			Category:  "debate",
			Template:  "Generate strong counterarguments against the {{.Side}} side of the debate on: {{.Topic}}",
			Variables: []PromptVariable{{Name: "Side", Required: true}, {Name: "Topic", Required: true}},
		},

		// --- Negotiation ---
		{
			ID:       "negotiation.scenario",
			Category: "negotiation",
			Template: "Create a negotiation scenario based on: {{.Scenario}}. " +
				"Outline the interests of both parties and potential areas for compromise.",
			Variables: []PromptVariable{{Name: "Scenario", Required: true}},
		},
		{
			ID:        "negotiation.analyze_offer",
			Category:  "negotiation",
			Template:  "Analyze this opening offer in the context of the negotiation on {{.Scenario}}: {{.Offer}}",
			Variables: []PromptVariable{{Name: "Scenario", Required: true}, {Name: "Offer", Required: true}},
		},
		{
			ID:       "negotiation.continue",
			Category: "negotiation",
			Template: "Continue this negotiation on {{.Scenario}}.\n\nNegotiation so far:\n{{.History}}\n" +
				"The other party now offers: {{.Offer}}\n\nRespond as the counterparty with a realistic reply and counter-offer.",
			Variables: []PromptVariable{
				{Name: "Scenario", Required: true},
				{Name: "History", Required: true},
				{Name: "Offer", Required: true},
			},
		},
		{
			ID:        "negotiation.tactics",
			Category:  "negotiation",
			Template:  "Provide advanced negotiation tactics and strategies for the following scenario: {{.Scenario}}",
			Variables: []PromptVariable{{Name: "Scenario", Required: true}},
		},

		// --- Fact check ---
		{
			ID:       "factcheck.research",
			Category: "factcheck",
			Template: "Research the following statement and summarize the most relevant evidence for and against it: " +
				"{{.Statement}}. Cite credible sources.",
			Variables: []PromptVariable{{Name: "Statement", Required: true}},
		},
		{
			ID:       "factcheck.verdict",
			Category: "factcheck",
			Template: "Fact-check the following statement: {{.Statement}}.\n\nResearch findings:\n{{.Research}}\n\n" +
				"Provide a clear verdict and cite credible sources to support your conclusion.",
			Variables: []PromptVariable{{Name: "Statement", Required: true}, {Name: "Research", Required: true}},
		},
		{
			ID:        "factcheck.sources",
			Category:  "factcheck",
			Template:  "Suggest additional credible sources and related context for further exploration of: {{.Statement}}",
			Variables: []PromptVariable{{Name: "Statement", Required: true}},
		},

		// --- Bias detection ---
		{
			ID:       "bias.analyze",
			Category: "bias",
			Template: "Analyze the following argument for cognitive biases: {{.Argument}}. " +
				"Identify specific biases and explain how they manifest in the argument.",
			Variables: []PromptVariable{{Name: "Argument", Required: true}},
		},
		{
			ID:       "bias.detect",
			Category: "bias",
			Template: "List the cognitive biases present in the following argument: {{.Argument}}.\n" +
				"Answer with a JSON array of bias names only, e.g. [\"Confirmation Bias\"].",
			Variables: []PromptVariable{{Name: "Argument", Required: true}},
		},
		{
			ID:        "bias.explain",
			Category:  "bias",
			Template:  "Explain how the {{.Bias}} is manifested in the following argument: {{.Argument}}",
			Variables: []PromptVariable{{Name: "Bias", Required: true}, {Name: "Argument", Required: true}},
		},
		{
			ID:        "bias.mitigate",
			Category:  "bias",
			Template:  "Suggest strategies to mitigate the following cognitive biases: {{.Biases}}",
			Variables: []PromptVariable{{Name: "Biases", Required: true}},
		},

		// --- Contract analysis ---
		{
			ID:       "contract.analyze",
			Category: "contract",
			Template: "Analyze the following contract clause: {{.Clause}}. " +
				"Highlight key terms, potential risks, and suggest improvements.",
			Variables: []PromptVariable{{Name: "Clause", Required: true}},
		},
		{
			ID:       "contract.breakdown",
			Category: "contract",
			Template: "Provide a detailed breakdown of the following contract clause: {{.Clause}}.\n" +
				"Answer as sections in the form \"Section Title: analysis\", separated by blank lines.",
			Variables: []PromptVariable{{Name: "Clause", Required: true}},
		},
		{
			ID:        "contract.legal",
			Category:  "contract",
			Template:  "Summarize the potential legal risks and implications of the following contract clause: {{.Clause}}",
			Variables: []PromptVariable{{Name: "Clause", Required: true}},
		},
		{
			ID:        "contract.sentiment",
			Category:  "contract",
			Template:  "Provide a sentiment analysis of the following contract clause: {{.Clause}}",
			Variables: []PromptVariable{{Name: "Clause", Required: true}},
		},
		{
			ID:        "contract.improve",
			Category:  "contract",
			Template:  "Suggest improvements or alternative phrasings for the following contract clause: {{.Clause}}",
			Variables: []PromptVariable{{Name: "Clause", Required: true}},
		},

		// --- Salary negotiation ---
		{
			ID:       "salary.advice",
			Category: "salary",
			Template: "Provide salary negotiation advice for: {{.JobDetails}}. " +
				"Include market data, negotiation strategies, and potential talking points.",
			Variables: []PromptVariable{{Name: "JobDetails", Required: true}},
		},
		{
			ID:       "salary.simulate",
			Category: "salary",
			Template: "Simulate a salary negotiation for this job: {{.JobDetails}}\n\n" +
				"The candidate has proposed: {{.Proposal}}\n\n" +
				"Provide a realistic employer response and potential counter-offer.",
			Variables: []PromptVariable{{Name: "JobDetails", Required: true}, {Name: "Proposal", Required: true}},
		},
	}

	for _, pt := range builtins {
		if err := r.Register(pt); err != nil {
			return err
		}
	}
	return nil
}

// NewSeeded returns a registry pre-loaded with the built-in prompt library.
func NewSeeded() *Registry {
	r := NewRegistry()
	if err := Seed(r); err != nil {
		// Built-ins are static; a parse failure here is a programming error.
		panic(err)
	}
	return r
}
