// internal/util/util_test.go
package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	data := []byte("test payload")

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(got) != string(data) {
		t.Fatalf("unexpected file contents: got %q want %q", got, data)
	}
}

func TestTruncateRunes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "no truncation", in: "hello", max: 10, want: "hello"},
		{name: "ascii truncation", in: "helloworld", max: 5, want: "hello…"},
		{name: "multibyte truncation", in: "こんにちは世界", max: 4, want: "こんにち…"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateRunes(tt.in, tt.max); got != tt.want {
				t.Fatalf("TruncateRunes(%q,%d)=%q want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestWrapTableCell(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 75)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: " \n\t ", want: ""},
		{name: "short", in: "Create a story about:\nrobots", want: "Create a story about: robots"},
		{
			name: "exactly sixty",
			in:   strings.Repeat("a", 29) + " " + strings.Repeat("b", 30),
			want: strings.Repeat("a", 29) + " " + strings.Repeat("b", 30),
		},
		{
			name: "sixty one wraps",
			in:   strings.Repeat("a", 30) + " " + strings.Repeat("b", 30),
			want: strings.Repeat("a", 30) + "<br>" + strings.Repeat("b", 30),
		},
		{name: "overlong word alone", in: "short " + long + " tail", want: "short<br>" + long + "<br>tail"},
		{name: "overlong first word", in: long, want: long},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WrapTableCell(tt.in); got != tt.want {
				t.Fatalf("WrapTableCell(%q)=%q want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrapTableCellProperties(t *testing.T) {
	t.Parallel()

	text := `You are Q-bit, a friendly and knowledgeable AI assistant! 🤖

Your personality traits:
• 🌟 Enthusiastic and engaging in conversations
• 🎯 Precise and thorough in explanations with an unreasonablyextraordinarilysupercalifragilisticexpialidociouslylongword`

	wrapped := WrapTableCell(text)
	for _, segment := range strings.Split(wrapped, TableLineBreak) {
		if utf8.RuneCountInString(segment) > TableCellWidth && len(strings.Fields(segment)) != 1 {
			t.Fatalf("segment exceeds width with multiple words: %q", segment)
		}
		if segment == "" {
			t.Fatalf("unexpected empty segment in %q", wrapped)
		}
	}

	roundTrip := strings.Fields(strings.ReplaceAll(wrapped, TableLineBreak, " "))
	original := strings.Fields(text)
	if strings.Join(roundTrip, " ") != strings.Join(original, " ") {
		t.Fatalf("words not preserved:\n got %v\nwant %v", roundTrip, original)
	}
}
