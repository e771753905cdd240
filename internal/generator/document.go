package generator

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// FilePrefix and FileExt name a document's file: doc_<id>.txt.
const (
	FilePrefix = "doc_"
	FileExt    = ".txt"
)

// Document is one synthetic enterprise document. It is immutable once assembled.
type Document struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Topic      string `json:"topic"`
	DocType    string `json:"doc_type"`
	Department string `json:"department"`
	Content    string `json:"content"`
}

// Filename returns the corpus file name for the document.
func (d *Document) Filename() string {
	return Filename(d.ID)
}

// Filename builds the corpus file name for a document id.
func Filename(id string) string {
	return FilePrefix + id + FileExt
}

// IDFromFilename extracts the document id from a corpus file name.
func IDFromFilename(name string) (string, bool) {
	if !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileExt) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileExt)
	return id, id != ""
}

// Section headings, in document order.
const (
	SectionPurpose    = "Purpose"
	SectionScope      = "Scope"
	SectionTechnical  = "Technical Requirements"
	SectionProcedures = "Procedures"
	SectionCompliance = "Compliance and Security"
)

// Sections lists the H2 sections every document carries after its overview.
var Sections = []string{
	"Overview",
	SectionPurpose,
	SectionScope,
	SectionTechnical,
	SectionProcedures,
	SectionCompliance,
}

// Paragraph ranges per section.
const (
	shortMin, shortMax           = 2, 4
	longMin, longMax             = 4, 8
	complianceMin, complianceMax = 2, 3
	maxBackdateDays              = 365
)

var componentRoles = []string{
	"Primary processing layer",
	"Data persistence",
	"Monitoring and observability",
	"Security and access control",
}

var complianceFrameworks = []string{
	"SOC 2 Type II requirements",
	"Internal security policies",
	"Data retention guidelines",
	"Access control standards",
}

// Assembler builds complete documents from vocabulary draws and engine output.
type Assembler struct {
	src    *Source
	vocab  *Vocabulary
	engine *Engine
	asOf   time.Time
}

// NewAssembler creates an assembler. asOf is the reference date that
// "last updated" timestamps are backdated from.
func NewAssembler(src *Source, vocab *Vocabulary, engine *Engine, asOf time.Time) *Assembler {
	return &Assembler{
		src:    src,
		vocab:  vocab,
		engine: engine,
		asOf:   asOf,
	}
}

// Assemble builds the document for (id, topic, docType, department).
func (a *Assembler) Assemble(id, topic, docType, department string) *Document {
	title := fmt.Sprintf("%s %s: %s", department, titleCase(docType), titleCase(strings.ReplaceAll(topic, "_", " ")))

	var b strings.Builder
	a.writeHeader(&b, title, id, topic, docType, department)

	sections := []string{
		a.purpose(topic),
		a.scope(topic, docType, department),
		a.technical(topic),
		a.procedures(topic),
		a.compliance(topic),
	}
	b.WriteString(strings.Join(sections, "\n"))

	return &Document{
		ID:         id,
		Title:      title,
		Topic:      topic,
		DocType:    docType,
		Department: department,
		Content:    b.String(),
	}
}

func (a *Assembler) writeHeader(b *strings.Builder, title, id, topic, docType, department string) {
	updated := a.asOf.AddDate(0, 0, -a.src.Between(1, maxBackdateDays))

	fmt.Fprintf(b, "# %s\n\n", title)
	fmt.Fprintf(b, "**Document ID:** DOC-%s\n", strings.ToUpper(id))
	fmt.Fprintf(b, "**Department:** %s\n", department)
	fmt.Fprintf(b, "**Type:** %s\n", titleCase(docType))
	fmt.Fprintf(b, "**Last Updated:** %s\n", updated.Format("2006-01-02"))
	fmt.Fprintf(b, "**Owner:** %s Team\n\n", department)
	b.WriteString("---\n\n")
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(b, "This document describes the %s procedures and guidelines for the %s department.\n", topic, department)
	b.WriteString("It covers implementation details, best practices, and operational requirements.\n")
}

func (a *Assembler) purpose(topic string) string {
	return fmt.Sprintf("## %s\n\n%s\n", SectionPurpose, a.engine.Paragraph(topic, shortMin, shortMax))
}

func (a *Assembler) scope(topic, docType, department string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", SectionScope)
	fmt.Fprintf(&b, "This %s applies to all %s personnel and systems involved in %s operations.\n", docType, department, topic)
	fmt.Fprintf(&b, "The guidelines outlined here %s.\n\n", a.src.Choice(a.vocab.Requirements))
	b.WriteString("Key stakeholders include:\n")
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "- %s Team\n", a.src.Choice(a.vocab.Departments))
	}
	return b.String()
}

func (a *Assembler) technical(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", SectionTechnical)
	fmt.Fprintf(&b, "%s\n\n", a.engine.Paragraph(topic, longMin, longMax))
	b.WriteString("### Infrastructure Components\n\n")
	fmt.Fprintf(&b, "The following components are required for %s:\n\n", topic)
	for i, role := range componentRoles {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, a.src.Choice(a.vocab.TechTerms), role)
	}
	return b.String()
}

func (a *Assembler) procedures(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", SectionProcedures)
	b.WriteString("### Standard Operations\n\n")
	fmt.Fprintf(&b, "To %s the %s system:\n\n", a.src.Choice(a.vocab.Actions), topic)
	b.WriteString("1. Verify prerequisites and access permissions\n")
	fmt.Fprintf(&b, "2. Review current configuration in %s\n", a.src.Choice(a.vocab.TechTerms))
	fmt.Fprintf(&b, "3. Execute the %s procedure\n", a.src.Choice(a.vocab.Actions))
	b.WriteString("4. Validate results using monitoring dashboards\n")
	b.WriteString("5. Document changes according to policy\n\n")
	fmt.Fprintf(&b, "%s\n", a.engine.Paragraph(topic, shortMin, shortMax))
	return b.String()
}

func (a *Assembler) compliance(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", SectionCompliance)
	fmt.Fprintf(&b, "All %s operations must comply with:\n\n", topic)
	for _, framework := range complianceFrameworks {
		fmt.Fprintf(&b, "- %s\n", framework)
	}
	fmt.Fprintf(&b, "\n%s\n", a.engine.Paragraph(topic, complianceMin, complianceMax))
	return b.String()
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
// A word starts after any non-letter, so "CI/CD automation" becomes "Ci/Cd Automation".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
