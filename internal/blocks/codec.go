package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Encode serializes an ordered block list to its persisted JSON form.
func Encode(list []Block) (string, error) {
	if list == nil {
		list = []Block{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("blocks: encode: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted document string back into a block list.
//
// Decode is total: malformed input (invalid JSON, or valid JSON that is not
// an array) degrades to DefaultBlocks rather than an error, so a corrupted
// persisted document yields an empty editable document instead of crashing
// the caller.
func Decode(text string) []Block {
	var list []Block
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return DefaultBlocks()
	}
	if list == nil {
		return DefaultBlocks()
	}
	return list
}

// PlainText produces the plain-text projection of a document: the Content of
// every prose-bearing block (text, headings, quote, code), newline-joined in
// document order. Media, quiz, and table blocks contribute nothing even
// though they carry payload in metadata.
func PlainText(list []Block) string {
	var parts []string
	for _, b := range list {
		if Textual(b.Type) {
			parts = append(parts, b.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// Title derives a display title for a document: the content of the first
// heading block, else the first non-empty textual block, else "".
func Title(list []Block) string {
	for _, b := range list {
		switch b.Type {
		case TypeHeading1, TypeHeading2, TypeHeading3:
			if t := strings.TrimSpace(stripTags(b.Content)); t != "" {
				return t
			}
		}
	}
	for _, b := range list {
		if Textual(b.Type) {
			if t := strings.TrimSpace(stripTags(b.Content)); t != "" {
				return t
			}
		}
	}
	return ""
}

// stripTags removes HTML tags from rich-text content for title/index use.
// This is a projection helper, not a sanitizer; rendering goes through the
// render package.
func stripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var sb strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
