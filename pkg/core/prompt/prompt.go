// Package prompt provides the prompt template registry for LLM interactions.
// Templates are plain data with named placeholders, defined statically at
// process start and immutable thereafter: rendering is substitution, never
// code execution.
package prompt

// PromptTemplate represents a reusable prompt with metadata.
type PromptTemplate struct {
	ID        string           // Unique identifier (e.g. "debate.open")
	Category  string           // Skill category (debate, negotiation, ...)
	Template  string           // Go text/template body
	Variables []PromptVariable // Variables used in the template
}

// PromptVariable declares a named placeholder consumed by a template.
type PromptVariable struct {
	Name     string
	Required bool
}
