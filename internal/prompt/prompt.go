// Package prompt assembles the text sent to the generation call from a
// persona block, the recalled memory block and the current user query.
package prompt

import (
	"fmt"
	"os"
	"strings"
)

// Template slots.
const (
	SlotMemory = "{memory_block}"
	SlotQuery  = "{user_prompt}"
)

// DefaultPersona is the static instruction block placed before the template.
const DefaultPersona = `You are CORE, a candid and opinionated assistant with a dry sense of humor.
You give direct answers, push back on flawed assumptions, and adapt your tone to the user's mood.
You do not manage long-term memory yourself; you work with the recent conversation provided in the prompt.
Keep answers short and useful.`

// DefaultTemplate frames the memory block and the current query.
const DefaultTemplate = `### Memory:
You have access to the following recent conversation:

{memory_block}

Use this memory only if it's relevant to the current user query.

---

### Current User Query:
{user_prompt}

---

### Instructions:
- Answer the current user query as clearly and concisely as possible.
- Use memory only if it helps improve the response.
- Do not mention that you are using memory or accessing past data.
- If the memory is irrelevant to the current query, ignore it.

Your response:
`

// Builder renders prompts from a persona and a two-slot template.
type Builder struct {
	persona  string
	template string
}

// NewBuilder creates a Builder. Empty arguments select the defaults.
func NewBuilder(persona, template string) *Builder {
	if persona == "" {
		persona = DefaultPersona
	}
	if template == "" {
		template = DefaultTemplate
	}
	return &Builder{persona: persona, template: template}
}

// LoadBuilder reads persona and template overrides from files. Empty paths
// keep the defaults. A template file must contain both slots.
func LoadBuilder(personaFile, templateFile string) (*Builder, error) {
	var persona, template string

	if personaFile != "" {
		data, err := os.ReadFile(personaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read persona file: %w", err)
		}
		persona = strings.TrimSpace(string(data))
	}

	if templateFile != "" {
		data, err := os.ReadFile(templateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file: %w", err)
		}
		template = string(data)
		for _, slot := range []string{SlotMemory, SlotQuery} {
			if !strings.Contains(template, slot) {
				return nil, fmt.Errorf("template %s is missing slot %s", templateFile, slot)
			}
		}
	}

	return NewBuilder(persona, template), nil
}

// Build returns persona, a blank line, then the template with both slots filled.
// Slot text inside memoryBlock or query is not expanded again.
func (b *Builder) Build(memoryBlock, query string) string {
	r := strings.NewReplacer(SlotMemory, memoryBlock, SlotQuery, query)
	return b.persona + "\n\n" + r.Replace(b.template)
}
