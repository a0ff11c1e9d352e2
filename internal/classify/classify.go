// Package classify decides whether a payload returned by the BOE upstream is
// usable content or an upstream-side error, based only on the body text.
// The upstream does not set reliable content types, so every check here is a
// prefix or substring test over the trimmed, lower-cased payload.
package classify

import "strings"

// Reason identifies why a payload was rejected.
type Reason string

const (
	ReasonEmpty               Reason = "EMPTY"
	ReasonUpstreamHTMLError   Reason = "UPSTREAM_HTML_ERROR"
	ReasonUpstreamErrorPhrase Reason = "UPSTREAM_ERROR_PHRASE"
	ReasonUnrecognized        Reason = "UNRECOGNIZED"
)

// Known openers, compared against the lower-cased payload.
var (
	validPrefixes = []string{
		"<?xml",
		"<documento",
		"<sumario",
		"<response",
	}

	errorDocumentPrefixes = []string{
		"<error",
	}

	htmlPrefixes = []string{
		"<!doctype html",
		"<html",
	}

	errorPhrases = []string{
		"error en la información",
		"no se ha encontrado el documento",
		"página no encontrada",
	}
)

// Result is the outcome of classifying a payload. Exactly one of the two
// states holds: Valid with Content set, or invalid with Reason set.
type Result struct {
	valid   bool
	content string
	reason  Reason
}

// Valid reports whether the payload was accepted.
func (r Result) Valid() bool {
	return r.valid
}

// Content returns the original payload of a valid result, or "" otherwise.
func (r Result) Content() string {
	return r.content
}

// Reason returns the rejection reason of an invalid result, or "" otherwise.
func (r Result) Reason() Reason {
	return r.reason
}

func valid(payload string) Result {
	return Result{valid: true, content: payload}
}

func invalid(reason Reason) Result {
	return Result{reason: reason}
}

// Classify applies the structured-document rules to payload. Rules are
// evaluated in order and the first match wins:
//
//  1. empty → invalid EMPTY
//  2. XML declaration or known root element → valid
//  3. error-document root element → valid (callers inspect content)
//  4. HTML document → invalid UPSTREAM_HTML_ERROR
//  5. known upstream error phrase → invalid UPSTREAM_ERROR_PHRASE
//  6. any other tag → valid
//  7. otherwise → invalid UNRECOGNIZED
func Classify(payload string) Result {
	text := normalize(payload)

	if text == "" {
		return invalid(ReasonEmpty)
	}
	if hasAnyPrefix(text, validPrefixes) {
		return valid(payload)
	}
	if hasAnyPrefix(text, errorDocumentPrefixes) {
		return valid(payload)
	}
	if hasAnyPrefix(text, htmlPrefixes) {
		return invalid(ReasonUpstreamHTMLError)
	}
	if containsAny(text, errorPhrases) {
		return invalid(ReasonUpstreamErrorPhrase)
	}
	if strings.HasPrefix(text, "<") {
		return valid(payload)
	}
	return invalid(ReasonUnrecognized)
}

// ClassifyPage checks an HTML page payload, where markup is expected and only
// emptiness or a known error phrase marks a failure.
func ClassifyPage(payload string) Result {
	text := normalize(payload)

	if text == "" {
		return invalid(ReasonEmpty)
	}
	if containsAny(text, errorPhrases) {
		return invalid(ReasonUpstreamErrorPhrase)
	}
	return valid(payload)
}

// IsErrorDocument reports whether payload is an XML document whose root
// element is the upstream error envelope. A leading XML declaration is skipped.
func IsErrorDocument(payload string) bool {
	text := normalize(payload)
	if strings.HasPrefix(text, "<?xml") {
		end := strings.Index(text, "?>")
		if end < 0 {
			return false
		}
		text = strings.TrimSpace(text[end+2:])
	}
	return hasAnyPrefix(text, errorDocumentPrefixes)
}

func normalize(payload string) string {
	return strings.ToLower(strings.TrimSpace(payload))
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
