package chunker

import "strings"

// topicEntry maps a topic name to the lowercase substrings that
// trigger it.
type topicEntry struct {
	name     string
	triggers []string
}

// topicTable is the fixed topic vocabulary. Matching is deliberately
// plain substring search: the ranking constants downstream are
// calibrated against it, so smarter matching would silently change
// ranking behavior.
var topicTable = []topicEntry{
	{"startups", []string{"startup", "founder", "y combinator", "entrepreneur"}},
	{"fundraising", []string{"fundrais", "investor", "venture capital", "seed round", "valuation", "angel"}},
	{"product", []string{"product", "make something people want", "mvp", "prototype"}},
	{"growth", []string{"growth", "traction", "distribution", "scale"}},
	{"wealth", []string{"wealth", "money", "rich", "equity", "leverage"}},
	{"happiness", []string{"happiness", "happy", "peace", "desire", "meditation"}},
	{"decision-making", []string{"decision", "judgment", "first principles", "mental model"}},
	{"reading-learning", []string{"reading", "books", "learn", "knowledge"}},
	{"leadership", []string{"leadership", "leader", "founder mode", "manager", "delegate"}},
	{"hiring", []string{"hiring", "hire", "recruit", "talent", "cofounder"}},
	{"ideas", []string{"idea", "insight", "problem worth solving"}},
	{"competition", []string{"competition", "competitor", "monopoly", "moat"}},
}

// TagTopics attaches topics to a chunk by testing the lowercased
// concatenation of chunk text and document title against the topic
// table. A chunk may carry zero to all topics; the result is
// deterministic and free of duplicates.
func TagTopics(content, title string) []string {
	haystack := strings.ToLower(content + " " + title)

	var topics []string
	for _, entry := range topicTable {
		for _, trigger := range entry.triggers {
			if strings.Contains(haystack, trigger) {
				topics = append(topics, entry.name)
				break
			}
		}
	}
	return topics
}

// Vocabulary returns the full topic vocabulary in table order.
func Vocabulary() []string {
	names := make([]string, len(topicTable))
	for i, entry := range topicTable {
		names[i] = entry.name
	}
	return names
}
