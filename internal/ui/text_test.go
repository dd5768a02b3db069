package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatterWithColor(t *testing.T) {
	os.Unsetenv("NO_COLOR")
	color.NoColor = false

	result := Code.Sprint("theca list")
	if strings.Contains(result, "`") {
		t.Errorf("Code.Sprint should not contain backticks when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Code.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestFormatterWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name      string
		formatter Formatter
		input     string
		want      string
	}{
		{"Code adds backticks", Code, "theca list", "`theca list`"},
		{"Path has no decoration", Path, "~/.theca/default.yaml", "~/.theca/default.yaml"},
		{"Flag has no decoration", Flag, "--yes", "--yes"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "Started", "Started"},
		{"Urgent has no decoration", Urgent, "Urgent", "Urgent"},
		{"Info has no decoration", Info, "→", "→"},
		{"Highlight adds quotes", Highlight, "work", "'work'"},
		{"Muted adds parentheses", Muted, "empty", "(empty)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.formatter.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("%s.Sprint(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatterSprintf(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	result := Code.Sprintf("theca view %d", 3)
	want := "`theca view 3`"
	if result != want {
		t.Errorf("Code.Sprintf() = %q, want %q", result, want)
	}
}

func TestNoColorFunction(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
	os.Unsetenv("NO_COLOR")

	originalNoColor := color.NoColor
	DisableColor()
	if !noColor() {
		t.Error("noColor() should return true after DisableColor")
	}
	color.NoColor = originalNoColor
}

func TestEnsureNewline(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "a": "a\n", "a\n": "a\n"} {
		if got := EnsureNewline(in); got != want {
			t.Errorf("EnsureNewline(%q) = %q, want %q", in, got, want)
		}
	}
}
