package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the topic names listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topics []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topics = append(topics, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return topics
}

func TestTopics(t *testing.T) {
	// The readme is the table of contents: every topic it lists must load,
	// and every .md file must be listed.
	listed := readmeTopics(t)
	if len(listed) == 0 {
		t.Fatal("readme.md lists no topics")
	}

	for _, topic := range listed {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	embedded, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range embedded {
		if !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestGetTopic_Unknown(t *testing.T) {
	if _, err := GetTopic("no-such-topic"); err == nil {
		t.Error("expected an error for an unknown topic")
	}
}

func TestGetTopic_Star(t *testing.T) {
	all, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	for _, want := range []string{"# Fees", "# Capital Gains Tax", "# Realized P&L"} {
		if !strings.Contains(all, want) {
			t.Errorf("concatenated topics are missing %q", want)
		}
	}
}

func TestTopicsStartWithTitle(t *testing.T) {
	// Every topic must be well-formed markdown opening with a level-1 heading,
	// since topics are concatenated by `npf topic "*"`.
	topics, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range topics {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))
			first := root.FirstChild()
			heading, ok := first.(*ast.Heading)
			if !ok {
				t.Fatalf("topic %q does not start with a heading", topic)
			}
			if heading.Level != 1 {
				t.Errorf("topic %q starts with a level-%d heading, want level 1", topic, heading.Level)
			}
		})
	}
}
