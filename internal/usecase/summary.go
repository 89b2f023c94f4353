package usecase

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"campusbuddy/internal/entity"
)

const (
	generalTopic       = "general"
	summaryTopTopics   = 5
	summarySamples     = 3
	summaryTopUsers    = 5
	summaryListLimit   = 5
	summaryQuoteLength = 100
)

type summaryTopic struct {
	name     string
	keywords []string
}

// Topic taxonomy in report tie-break order. A message counts toward every topic
// whose keyword it contains.
var summaryTopics = []summaryTopic{
	{"exams", []string{"exam", "midterm", "final", "quiz", "test"}},
	{"assignments", []string{"assignment", "homework", "project", "submission", "submit"}},
	{"classes", []string{"class", "lecture", "lab", "professor", "course", "tutorial"}},
	{"study groups", []string{"study group", "group study", "study session", "study together"}},
	{"facilities", []string{"library", "cafeteria", "canteen", "gym", "wifi", "parking", "hostel"}},
	{"events", []string{"event", "fest", "party", "club", "workshop", "seminar", "hackathon"}},
	{"announcements", []string{"announcement", "notice", "circular"}},
}

var interrogatives = map[string]bool{
	"what": true, "when": true, "where": true, "who": true, "whom": true, "whose": true,
	"why": true, "how": true, "which": true, "can": true, "could": true, "would": true,
	"should": true, "is": true, "are": true, "do": true, "does": true, "did": true,
	"will": true, "anyone": true,
}

var importantMarkers = []string{"important", "reminder", "remind", "deadline", "urgent", "don't forget", "dont forget", "due"}

func topicsOf(content string) []string {
	lower := strings.ToLower(content)
	var topics []string
	for _, t := range summaryTopics {
		for _, k := range t.keywords {
			if strings.Contains(lower, k) {
				topics = append(topics, t.name)
				break
			}
		}
	}
	if len(topics) == 0 {
		return []string{generalTopic}
	}
	return topics
}

func isQuestion(content string) bool {
	if strings.Contains(content, "?") {
		return true
	}
	fields := strings.Fields(strings.ToLower(content))
	if len(fields) == 0 {
		return false
	}
	first := strings.Trim(fields[0], ".,!:;\"'")
	return interrogatives[first]
}

func isImportant(content string) bool {
	lower := strings.ToLower(content)
	for _, m := range importantMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

func quote(content string) string {
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= summaryQuoteLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:summaryQuoteLength]) + "..."
}

func topicRank(name string) int {
	for i, t := range summaryTopics {
		if t.name == name {
			return i
		}
	}
	return len(summaryTopics)
}

// BuildSummary renders the report for messages given in chronological order.
func BuildSummary(messages []entity.Message) entity.ChatSummary {
	summary := entity.ChatSummary{
		MessageCount:    len(messages),
		Topics:          []entity.TopicCount{},
		TopParticipants: []entity.ParticipantCount{},
		Questions:       []entity.QuotedMessage{},
		Important:       []entity.QuotedMessage{},
	}
	if len(messages) == 0 {
		summary.Summary = "No messages to summarize yet."
		return summary
	}

	topics := map[string]*entity.TopicCount{}
	participants := map[string]*entity.ParticipantCount{}

	for _, m := range messages {
		for _, name := range topicsOf(m.Content) {
			tc, ok := topics[name]
			if !ok {
				tc = &entity.TopicCount{Topic: name, Samples: []string{}}
				topics[name] = tc
			}
			tc.Count++
			if len(tc.Samples) < summarySamples {
				tc.Samples = append(tc.Samples, quote(m.Content))
			}
		}

		pc, ok := participants[m.AuthorId]
		if !ok {
			pc = &entity.ParticipantCount{UserId: m.AuthorId, Name: m.AuthorName}
			participants[m.AuthorId] = pc
		}
		pc.Count++

		if isQuestion(m.Content) && len(summary.Questions) < summaryListLimit {
			summary.Questions = append(summary.Questions, entity.QuotedMessage{MessageId: m.Id, AuthorName: m.AuthorName, Quote: quote(m.Content)})
		}
		if isImportant(m.Content) && len(summary.Important) < summaryListLimit {
			summary.Important = append(summary.Important, entity.QuotedMessage{MessageId: m.Id, AuthorName: m.AuthorName, Quote: quote(m.Content)})
		}
	}

	for _, tc := range topics {
		summary.Topics = append(summary.Topics, *tc)
	}
	sort.Slice(summary.Topics, func(i, j int) bool {
		a, b := summary.Topics[i], summary.Topics[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return topicRank(a.Topic) < topicRank(b.Topic)
	})
	if len(summary.Topics) > summaryTopTopics {
		summary.Topics = summary.Topics[:summaryTopTopics]
	}

	for _, pc := range participants {
		summary.TopParticipants = append(summary.TopParticipants, *pc)
	}
	summary.ParticipantCount = len(summary.TopParticipants)
	sort.Slice(summary.TopParticipants, func(i, j int) bool {
		a, b := summary.TopParticipants[i], summary.TopParticipants[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.UserId < b.UserId
	})
	if len(summary.TopParticipants) > summaryTopUsers {
		summary.TopParticipants = summary.TopParticipants[:summaryTopUsers]
	}

	first, last := messages[0], messages[len(messages)-1]
	from, to := first.Timestamp, last.Timestamp
	summary.From, summary.To = &from, &to

	summary.Summary = renderSummary(summary, first, last)
	return summary
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func renderSummary(s entity.ChatSummary, first, last entity.Message) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Chat Summary\n")
	fmt.Fprintf(&b, "Overview: %s from %s.\n", plural(s.MessageCount, "message"), plural(s.ParticipantCount, "participant"))

	b.WriteString("\nMain topics:\n")
	for _, t := range s.Topics {
		fmt.Fprintf(&b, "- %s (%s)\n", t.Topic, plural(t.Count, "message"))
		for _, q := range t.Samples {
			fmt.Fprintf(&b, "  > \"%s\"\n", q)
		}
	}

	b.WriteString("\nMost active participants:\n")
	for _, p := range s.TopParticipants {
		fmt.Fprintf(&b, "- %s: %s\n", p.Name, plural(p.Count, "message"))
	}

	if len(s.Questions) > 0 {
		b.WriteString("\nQuestions asked:\n")
		for _, q := range s.Questions {
			fmt.Fprintf(&b, "- %s: \"%s\"\n", q.AuthorName, q.Quote)
		}
	}

	if len(s.Important) > 0 {
		b.WriteString("\nImportant messages:\n")
		for _, q := range s.Important {
			fmt.Fprintf(&b, "- %s: \"%s\"\n", q.AuthorName, q.Quote)
		}
	}

	fmt.Fprintf(&b, "\nThe conversation started with %s: \"%s\"", first.AuthorName, quote(first.Content))
	if s.MessageCount > 1 {
		fmt.Fprintf(&b, " and most recently %s said: \"%s\"", last.AuthorName, quote(last.Content))
	}
	b.WriteString(".")

	return b.String()
}
