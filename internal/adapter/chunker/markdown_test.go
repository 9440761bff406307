package chunker

import (
	"strings"
	"testing"
)

func TestCleanMarkdownHeadings(t *testing.T) {
	in := "# Title\n\nSome text.\n\n## Section\n\nMore text."
	out := CleanMarkdown(in)

	if strings.Contains(out, "#") {
		t.Errorf("heading markers not stripped: %q", out)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "Section") {
		t.Error("heading text should survive cleaning")
	}
}

func TestCleanMarkdownLinks(t *testing.T) {
	in := "Read [Founder Mode](http://paulgraham.com/foundermode.html) today."
	out := CleanMarkdown(in)

	if out != "Read Founder Mode today." {
		t.Errorf("unexpected link cleaning result: %q", out)
	}
}

func TestCleanMarkdownEmphasis(t *testing.T) {
	in := "This is **bold** and *italic* and _underscored_."
	out := CleanMarkdown(in)

	if out != "This is bold and italic and underscored." {
		t.Errorf("unexpected emphasis cleaning result: %q", out)
	}
}

func TestCleanMarkdownBlankRuns(t *testing.T) {
	in := "para one\n\n\n\n\npara two"
	out := CleanMarkdown(in)

	if out != "para one\n\npara two" {
		t.Errorf("blank-line runs not collapsed: %q", out)
	}
}

func TestCleanMarkdownPure(t *testing.T) {
	in := "# A\n\n**b** [c](d)"
	if CleanMarkdown(in) != CleanMarkdown(in) {
		t.Error("CleanMarkdown must be deterministic")
	}
}
