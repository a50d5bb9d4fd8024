package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	snakeWordRe  = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	snakeUpperRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// initialisms are kept fully upper-case in Go identifiers.
var initialisms = map[string]struct{}{
	"ACL": {}, "API": {}, "ASCII": {}, "CPU": {}, "CSS": {}, "DNS": {},
	"EOF": {}, "GPU": {}, "GUID": {}, "HTML": {}, "HTTP": {}, "HTTPS": {},
	"ID": {}, "IO": {}, "IP": {}, "JSON": {}, "QPS": {}, "RAM": {},
	"RPC": {}, "SQL": {}, "SSH": {}, "TCP": {}, "TLS": {}, "TTL": {},
	"UDP": {}, "UI": {}, "UID": {}, "UUID": {}, "URI": {}, "URL": {},
	"UTF8": {}, "VM": {}, "XML": {},
}

// SnakeCase converts a record name to a lower snake_case file stem.
// Examples:
//   - "Window" -> "window"
//   - "RenderConfig" -> "render_config"
//   - "HTTPServer" -> "http_server"
func SnakeCase(name string) string {
	s := snakeWordRe.ReplaceAllString(name, "${1}_${2}")
	s = snakeUpperRe.ReplaceAllString(s, "${1}_${2}")

	return strings.ToLower(s)
}

// Pascal converts a schema key to an exported Go identifier.
// Examples:
//   - "width" -> "Width"
//   - "max_fps" -> "MaxFps"
//   - "server_url" -> "ServerURL"
//   - "clearColor" -> "ClearColor"
func Pascal(name string) string {
	var sb strings.Builder

	for _, tok := range tokenize(name) {
		upper := strings.ToUpper(tok)
		if _, ok := initialisms[upper]; ok {
			sb.WriteString(upper)
			continue
		}

		sb.WriteString(Capitalize(tok))
	}

	out := sb.String()
	if out == "" {
		return "X"
	}

	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		return "X" + out
	}

	return out
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// tokenize splits an identifier into CamelCase and separator-delimited tokens.
// Runes that cannot appear in a Go identifier act as separators.
// Examples:
//   - "OrderID" -> ["Order", "ID"]
//   - "customer_name" -> ["customer", "name"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "getHTTPResponse" -> ["get", "HTTP", "Response"]
func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var tokens []string

	var current strings.Builder

	runes := []rune(s)
	for i := range runes {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if i > 0 && shouldStartNewToken(runes, i) && current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// isSeparator returns true if the rune cannot be part of an identifier token.
func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// shouldStartNewToken determines if a new token should start at position i.
func shouldStartNewToken(runes []rune, i int) bool {
	r := runes[i]
	prevRune := runes[i-1]
	isUpper := unicode.IsUpper(r)
	isPrevUpper := unicode.IsUpper(prevRune)
	isPrevSep := isSeparator(prevRune)

	// Transition from lowercase to uppercase: start new token
	// e.g., "orderID" -> split before 'I'
	if isUpper && !isPrevUpper && !isPrevSep {
		return true
	}

	// End of acronym: check if next character is lowercase
	// e.g., "XMLParser" -> "XML" + "Parser", split before 'P'
	hasNextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
	if isUpper && isPrevUpper && hasNextLower {
		return true
	}

	return false
}
