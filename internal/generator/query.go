package generator

import "fmt"

// AnchorsPerTopic is how many leading documents of a topic are eligible as anchors.
const AnchorsPerTopic = 3

// RelatedPerQuery caps the same-topic peers added after the anchor.
const RelatedPerQuery = 2

// Query is a benchmark question with its ground-truth relevance set.
// RelevantDocs[0] is always the anchor document's file name.
type Query struct {
	ID           string   `json:"id" yaml:"id"`
	Text         string   `json:"text" yaml:"text"`
	Answer       string   `json:"answer" yaml:"answer"`
	RelevantDocs []string `json:"relevant_docs" yaml:"relevant_docs"`
	PrimaryTopic string   `json:"primary_topic" yaml:"primary_topic"`
	Department   string   `json:"department" yaml:"department"`
}

// Selection is the outcome of anchor selection.
type Selection struct {
	Anchors []*Document
	// Candidates is the size of the topic-qualified pool before truncation.
	Candidates int
	// Fallback is how many anchors came from the whole-corpus sample.
	Fallback int
}

// Short reports whether the topic-qualified pool could not cover the request.
func (s Selection) Short() bool {
	return s.Fallback > 0
}

// QueryTemplate renders a question about anchor.
type QueryTemplate func(doc *Document, s Slots) string

// DefaultQueryTemplates returns the eight question skeletons.
func DefaultQueryTemplates() []QueryTemplate {
	return []QueryTemplate{
		func(d *Document, s Slots) string {
			return fmt.Sprintf("How do I %s %s in the %s department?", s.Action(), d.Topic, d.Department)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("What are the requirements for %s according to %s guidelines?", d.Topic, d.Department)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("Where can I find the %s for %s?", d.DocType, d.Topic)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("What is the procedure for %s operations?", d.Topic)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("Who is responsible for %s in %s?", d.Topic, d.Department)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("What technologies are used for %s?", d.Topic)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("How should I handle %s compliance requirements?", d.Topic)
		},
		func(d *Document, _ Slots) string {
			return fmt.Sprintf("What are the best practices for %s?", d.Topic)
		},
	}
}

// QueryGenerator selects anchor documents and builds one query per anchor.
type QueryGenerator struct {
	src       *Source
	slots     Slots
	templates []QueryTemplate
}

// NewQueryGenerator creates a generator drawing from src.
func NewQueryGenerator(src *Source, vocab *Vocabulary) *QueryGenerator {
	return &QueryGenerator{
		src:       src,
		slots:     Slots{src: src, vocab: vocab},
		templates: DefaultQueryTemplates(),
	}
}

// SelectAnchors picks up to q anchors. The first AnchorsPerTopic documents of
// every topic with at least that many documents form the candidate pool, which
// is shuffled once and truncated to q. A shortfall is filled with a sample
// drawn from all of docs; that sample may repeat documents already selected.
func (g *QueryGenerator) SelectAnchors(index *TopicIndex, docs []*Document, q int) Selection {
	var pool []*Document
	for _, topic := range index.Topics() {
		topicDocs := index.Docs(topic)
		if len(topicDocs) >= AnchorsPerTopic {
			pool = append(pool, topicDocs[:AnchorsPerTopic]...)
		}
	}
	sel := Selection{Candidates: len(pool)}

	g.src.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > q {
		pool = pool[:q]
	}

	if len(pool) < q {
		for _, i := range g.src.SampleIndexes(len(docs), q-len(pool)) {
			pool = append(pool, docs[i])
			sel.Fallback++
		}
	}

	if len(pool) > q {
		pool = pool[:q]
	}
	sel.Anchors = pool
	return sel
}

// Generate builds the query for anchor. Related documents are the first
// RelatedPerQuery other documents sharing the anchor's topic.
func (g *QueryGenerator) Generate(anchor *Document, index *TopicIndex) Query {
	tmpl := g.templates[g.src.Intn(len(g.templates))]

	relevant := []string{anchor.Filename()}
	for _, peer := range index.Docs(anchor.Topic) {
		if len(relevant) > RelatedPerQuery {
			break
		}
		if peer.ID == anchor.ID {
			continue
		}
		relevant = append(relevant, peer.Filename())
	}

	return Query{
		ID:           "q" + anchor.ID,
		Text:         tmpl(anchor, g.slots),
		Answer:       "See " + anchor.Title,
		RelevantDocs: relevant,
		PrimaryTopic: anchor.Topic,
		Department:   anchor.Department,
	}
}

// GenerateAll selects anchors and builds their queries in anchor order.
func (g *QueryGenerator) GenerateAll(index *TopicIndex, docs []*Document, q int) ([]Query, Selection) {
	sel := g.SelectAnchors(index, docs, q)
	queries := make([]Query, 0, len(sel.Anchors))
	for _, anchor := range sel.Anchors {
		queries = append(queries, g.Generate(anchor, index))
	}
	return queries, sel
}
