package gen

import (
	"go/token"
	"strings"
	"sync"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
	// acronymsMu guards acronyms, which AddAcronym may extend at init time.
	acronymsMu sync.RWMutex
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Add common initialisms from golint and more.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HCL", "HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "LHS", "MAC",
		"MB", "QPS", "RAM", "RHS", "RPC", "SLA", "SMTP", "SQL", "SSH", "SSO",
		"TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI", "URL", "UTF8", "UUID",
		"VM", "XML", "XMPP", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym adds a new acronym used when generating Go identifiers.
// It should be called before generation starts.
func AddAcronym(word string) {
	acronymsMu.Lock()
	defer acronymsMu.Unlock()
	word = strings.ToUpper(word)
	acronyms[word] = struct{}{}
	rules.AddAcronym(word)
}

func isAcronym(w string) bool {
	acronymsMu.RLock()
	defer acronymsMu.RUnlock()
	_, ok := acronyms[w]
	return ok
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// words splits a GraphQL name into words at separators and at lower-to-upper
// case boundaries: "primaryFunction" => ["primary", "Function"].
func words(s string) []string {
	var (
		out []string
		cur []rune
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case isSeparator(r):
			flush()
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return out
}

// pascal converts a GraphQL name to an exported Go identifier.
//
//	user_info => UserInfo
//	id        => ID
//	__typename => Typename
func pascal(s string) string {
	ws := words(s)
	for i, w := range ws {
		upper := strings.ToUpper(w)
		if isAcronym(upper) {
			ws[i] = upper
		} else {
			ws[i] = rules.Capitalize(w)
		}
	}
	out := strings.Join(ws, "")
	if out == "" || unicode.IsDigit([]rune(out)[0]) {
		out = "X" + out
	}
	return out
}

// camel converts a GraphQL name to an unexported Go identifier that is not
// a keyword.
//
//	user_info => userInfo
//	id        => id
//	type      => type_
func camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return "x"
	}
	first := ws[0]
	if isAcronym(strings.ToUpper(first)) {
		ws[0] = strings.ToLower(first)
	} else {
		ws[0] = strings.ToLower(first[:1]) + first[1:]
	}
	for i := 1; i < len(ws); i++ {
		upper := strings.ToUpper(ws[i])
		if isAcronym(upper) {
			ws[i] = upper
		} else {
			ws[i] = rules.Capitalize(ws[i])
		}
	}
	out := strings.Join(ws, "")
	if unicode.IsDigit([]rune(out)[0]) {
		out = "x" + out
	}
	if token.IsKeyword(out) {
		out += "_"
	}
	return out
}

// singular returns the singular Go name of a list field's response name, used
// to name the nested entity of its elements: "friends" => "Friend".
func singular(responseName string) string {
	return pascal(rules.Singularize(responseName))
}

// enumConst returns the suffix of the Go constant for an enum value:
// "NEW_HOPE" => "NewHope".
func enumConst(value string) string {
	title := cases.Title(language.English)
	ws := words(value)
	for i, w := range ws {
		ws[i] = title.String(w)
	}
	out := strings.Join(ws, "")
	if out == "" || unicode.IsDigit([]rune(out)[0]) {
		out = "V" + out
	}
	return out
}
