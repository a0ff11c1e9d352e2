package classify

import (
	"regexp"
	"strings"
)

// ExtractReference returns the trimmed inner text of the first
// <tagName>…</tagName> pair in payload. The match is non-greedy and does not
// cross line breaks. It reports false when the tag is absent, unbalanced,
// self-closing, or empty.
//
// This is a pattern match, not an XML parse. Tags whose content holds nested
// markup are not supported.
func ExtractReference(payload, tagName string) (string, bool) {
	if payload == "" || tagName == "" {
		return "", false
	}

	tag := regexp.QuoteMeta(tagName)
	pattern, err := regexp.Compile("<" + tag + ">(.*?)</" + tag + ">")
	if err != nil {
		return "", false
	}

	match := pattern.FindStringSubmatch(payload)
	if len(match) < 2 {
		return "", false
	}

	ref := strings.TrimSpace(match[1])
	if ref == "" {
		return "", false
	}
	return ref, true
}
