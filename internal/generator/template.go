package generator

import (
	"fmt"
	"strings"
)

// Slots hands out fresh vocabulary draws to templates. Each call is an
// independent draw from the run's Source.
type Slots struct {
	src   *Source
	vocab *Vocabulary
}

func (s Slots) Department() string   { return s.src.Choice(s.vocab.Departments) }
func (s Slots) DocumentType() string { return s.src.Choice(s.vocab.DocumentTypes) }
func (s Slots) Tech() string         { return s.src.Choice(s.vocab.TechTerms) }
func (s Slots) Action() string       { return s.src.Choice(s.vocab.Actions) }
func (s Slots) Requirement() string  { return s.src.Choice(s.vocab.Requirements) }

// ParagraphTemplate renders one block of prose about topic.
// Slot draws happen in argument order, which keeps output reproducible.
type ParagraphTemplate func(topic string, s Slots) string

// DefaultParagraphTemplates returns the five enterprise prose skeletons.
func DefaultParagraphTemplates() []ParagraphTemplate {
	return []ParagraphTemplate{
		func(topic string, s Slots) string {
			return fmt.Sprintf("The %s system is designed to handle enterprise-scale workloads efficiently. "+
				"It integrates with %s and %s for optimal performance. "+
				"Teams should %s the configuration according to their specific requirements.",
				topic, s.Tech(), s.Tech(), s.Action())
		},
		func(topic string, s Slots) string {
			return fmt.Sprintf("When working with %s, it's important to consider scalability and reliability. "+
				"The recommended approach involves using %s in conjunction with %s. "+
				"This %s.",
				topic, s.Tech(), s.Tech(), s.Requirement())
		},
		func(topic string, s Slots) string {
			return fmt.Sprintf("Best practices for %s include regular monitoring and proactive maintenance. "+
				"The %s team is responsible for ensuring compliance with internal standards. "+
				"All changes %s.",
				topic, s.Department(), s.Requirement())
		},
		func(topic string, s Slots) string {
			return fmt.Sprintf("The implementation of %s follows our standard %s guidelines. "+
				"Key technologies include %s, %s, and %s. "+
				"Performance benchmarks show consistent throughput under load.",
				topic, s.DocumentType(), s.Tech(), s.Tech(), s.Tech())
		},
		func(topic string, s Slots) string {
			return fmt.Sprintf("For %s operations, the system leverages %s as the primary infrastructure. "+
				"The %s team maintains documentation and provides support. "+
				"Emergency procedures are outlined in the incident response playbook.",
				topic, s.Tech(), s.Department())
		},
	}
}

// TemplateTable maps topics to the templates used for them. Topics without
// an entry fall back to the default list.
type TemplateTable struct {
	defaults []ParagraphTemplate
	byTopic  map[string][]ParagraphTemplate
}

// NewTemplateTable creates a table. With no arguments the five default
// skeletons are used for every topic.
func NewTemplateTable(defaults ...ParagraphTemplate) *TemplateTable {
	if len(defaults) == 0 {
		defaults = DefaultParagraphTemplates()
	}
	return &TemplateTable{
		defaults: defaults,
		byTopic:  make(map[string][]ParagraphTemplate),
	}
}

// Register replaces the template list for topic.
func (t *TemplateTable) Register(topic string, templates ...ParagraphTemplate) {
	if len(templates) == 0 {
		delete(t.byTopic, topic)
		return
	}
	t.byTopic[topic] = templates
}

// For returns the templates for topic.
func (t *TemplateTable) For(topic string) []ParagraphTemplate {
	if templates, ok := t.byTopic[topic]; ok {
		return templates
	}
	return t.defaults
}

// Engine renders topic-parameterized paragraphs. It keeps no state between calls.
type Engine struct {
	src   *Source
	slots Slots
	table *TemplateTable
}

// NewEngine creates an engine drawing from src. A nil table uses the defaults.
func NewEngine(src *Source, vocab *Vocabulary, table *TemplateTable) *Engine {
	if table == nil {
		table = NewTemplateTable()
	}
	return &Engine{
		src:   src,
		slots: Slots{src: src, vocab: vocab},
		table: table,
	}
}

// Paragraph draws a count in [lo, hi], renders count/3+1 template
// instantiations (at least one) and joins them with a blank line.
func (e *Engine) Paragraph(topic string, lo, hi int) string {
	count := e.src.Between(lo, hi)/3 + 1
	if count < 1 {
		count = 1
	}
	templates := e.table.For(topic)

	parts := make([]string, count)
	for i := range parts {
		tmpl := templates[e.src.Intn(len(templates))]
		parts[i] = tmpl(topic, e.slots)
	}
	return strings.Join(parts, "\n\n")
}
