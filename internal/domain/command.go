package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Parameter describes one positional parameter of a cataloged command.
type Parameter struct {
	Name     string `yaml:"name"`
	TypeHint string `yaml:"type"`
	Required bool   `yaml:"required"`
	Default  string `yaml:"default"`
}

// CommandDescriptor is one entry in the command catalog: the allow-list
// contract between LLM output and local execution.
type CommandDescriptor struct {
	Name        string      `yaml:"name"`
	Parameters  []Parameter `yaml:"parameters"`
	Description string      `yaml:"description"`
	// RawShell marks commands whose arguments may legitimately contain
	// shell metacharacters (e.g. a SQL string). The validator only honors
	// this when the run's policy also permits it.
	RawShell bool `yaml:"raw_shell"`
	// Source records which catalog source contributed this descriptor.
	Source string `yaml:"-"`
}

// Signature renders the descriptor's parameter list, e.g. "path [depth:int]".
func (d CommandDescriptor) Signature() string {
	parts := make([]string, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		token := p.Name
		if p.TypeHint != "" {
			token += ":" + p.TypeHint
		}
		if !p.Required {
			token = "[" + token + "]"
		}
		parts = append(parts, token)
	}
	return strings.Join(parts, " ")
}

// RequiredArity returns the count of required parameters.
func (d CommandDescriptor) RequiredArity() int {
	n := 0
	for _, p := range d.Parameters {
		if p.Required {
			n++
		}
	}
	return n
}

// Catalog is the immutable set of commands the pipeline may execute.
// Built once by the catalog builder; never mutated afterwards.
type Catalog struct {
	byName map[string]CommandDescriptor
	names  []string
}

// NewCatalog builds a catalog from descriptors that were already merged
// (duplicates resolved by the builder).
func NewCatalog(descriptors []CommandDescriptor) Catalog {
	byName := make(map[string]CommandDescriptor, len(descriptors))
	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		if _, seen := byName[d.Name]; !seen {
			names = append(names, d.Name)
		}
		byName[d.Name] = d
	}
	sort.Strings(names)
	return Catalog{byName: byName, names: names}
}

// Lookup returns the descriptor registered under name.
func (c Catalog) Lookup(name string) (CommandDescriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// Names lists command names in sorted order.
func (c Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len reports how many commands the catalog holds.
func (c Catalog) Len() int {
	return len(c.byName)
}

// Descriptors returns all entries in name order.
func (c Catalog) Descriptors() []CommandDescriptor {
	out := make([]CommandDescriptor, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}

// RenderPrompt serializes the catalog for injection into an LLM prompt:
// one line per command with its signature, the description indented below.
func (c Catalog) RenderPrompt() string {
	if c.Len() == 0 {
		return "(no commands available)"
	}
	var b strings.Builder
	for _, name := range c.names {
		d := c.byName[name]
		if sig := d.Signature(); sig != "" {
			fmt.Fprintf(&b, "  %s %s\n", d.Name, sig)
		} else {
			fmt.Fprintf(&b, "  %s\n", d.Name)
		}
		if d.Description != "" {
			fmt.Fprintf(&b, "    %s\n", firstLine(d.Description))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

// CommandInvocation is one parsed, not-yet-validated command call.
type CommandInvocation struct {
	Raw  string
	Name string
	Args []string
}

// String reconstructs the invocation for logs and history.
func (inv CommandInvocation) String() string {
	if len(inv.Args) == 0 {
		return inv.Name
	}
	return inv.Name + " " + strings.Join(inv.Args, " ")
}
