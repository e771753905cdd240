package generator

// TopicIndex maps each topic to the documents generated under it, in
// generation order. It only grows; nothing is ever removed.
type TopicIndex struct {
	byTopic map[string][]*Document
	order   []string
}

// NewTopicIndex creates an empty index.
func NewTopicIndex() *TopicIndex {
	return &TopicIndex{byTopic: make(map[string][]*Document)}
}

// Add appends doc under its topic, creating the topic on first use.
func (t *TopicIndex) Add(doc *Document) {
	if _, ok := t.byTopic[doc.Topic]; !ok {
		t.order = append(t.order, doc.Topic)
	}
	t.byTopic[doc.Topic] = append(t.byTopic[doc.Topic], doc)
}

// Docs returns the documents indexed under topic. Callers must not modify the slice.
func (t *TopicIndex) Docs(topic string) []*Document {
	return t.byTopic[topic]
}

// Topics returns topics in the order they were first seen.
func (t *TopicIndex) Topics() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of distinct topics.
func (t *TopicIndex) Len() int {
	return len(t.order)
}
