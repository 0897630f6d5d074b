package planner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"day-planner/internal/llm"
)

//go:embed narrator_prompt.md
var narratorPrompt string

var narratorTmpl = template.Must(template.New("Narrator").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(narratorPrompt))

// Narrator rewrites a plan's reasoning with a language model.
type Narrator struct {
	textGen llm.TextGenerator
}

func NewNarrator(textGen llm.TextGenerator) *Narrator {
	return &Narrator{textGen: textGen}
}

// Narrate returns the model's blurb for p. Callers keep the templated
// reasoning when it fails.
func (n *Narrator) Narrate(ctx context.Context, c Criteria, p *Plan) (string, llm.TokenUsage, error) {
	if p == nil {
		return "", llm.TokenUsage{}, fmt.Errorf("no plan to narrate")
	}

	prompt, err := buildNarratorPrompt(c, p)
	if err != nil {
		return "", llm.TokenUsage{}, err
	}

	resp, err := n.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", llm.TokenUsage{}, fmt.Errorf("failed to narrate plan: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", resp.Usage, fmt.Errorf("narrator returned an empty response")
	}
	return text, resp.Usage, nil
}

func buildNarratorPrompt(c Criteria, p *Plan) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Criteria Criteria
		Plan     *Plan
	}{c, p}
	if err := narratorTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build narrator prompt: %w", err)
	}
	return buf.String(), nil
}
