package mpd

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/famish99/winampmpd/internal/winamp"
)

// queryFields maps MPD tag types to media library query fields
var queryFields = map[string]string{
	"artist":      "artist",
	"album":       "album",
	"albumartist": "albumartist",
	"title":       "title",
	"genre":       "genre",
	"date":        "year",
	"track":       "trackno",
	"comment":     "comment",
	"composer":    "composer",
	"file":        "filename",
	"filename":    "filename",
}

// anyFields are searched for the "any" tag type
var anyFields = []string{"filename", "title", "artist", "album"}

var numericFields = map[string]bool{"year": true, "trackno": true}

// term is one tag comparison. op is a media library operator: "=", "!="
// or "has".
type term struct {
	tag   string
	op    string
	value string
}

var expressionTerm = regexp.MustCompile(`\(\s*([A-Za-z]+)\s+(==|!=|contains)\s+("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*')\s*\)`)

var expressionOps = map[string]string{
	"==":       "=",
	"!=":       "!=",
	"contains": "has",
}

// parseFilter reads either TYPE VALUE pairs or a single filter expression
// such as ((artist == 'Ween') AND (album contains "Pod")). Pairs compare
// with op.
func parseFilter(args []string, op string) ([]term, error) {
	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "(") {
		return parseExpression(args[0])
	}

	if len(args) == 0 || len(args)%2 != 0 {
		return nil, errors.New("incorrect arguments")
	}
	terms := make([]term, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		terms = append(terms, term{tag: strings.ToLower(args[i]), op: op, value: args[i+1]})
	}
	return terms, nil
}

func parseExpression(expr string) ([]term, error) {
	matches := expressionTerm.FindAllStringSubmatch(expr, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("unsupported filter expression: %s", expr)
	}
	rest := expressionTerm.ReplaceAllString(expr, "")
	rest = strings.NewReplacer("(", "", ")", "", "AND", "").Replace(rest)
	if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("unsupported filter expression: %s", expr)
	}

	terms := make([]term, len(matches))
	for i, m := range matches {
		terms[i] = term{
			tag:   strings.ToLower(m[1]),
			op:    expressionOps[m[2]],
			value: unescape(m[3][1 : len(m[3])-1]),
		}
	}
	return terms, nil
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// libraryQuery turns terms into a media library query. A lone substring
// match on "any" becomes a keyword search instead.
func libraryQuery(terms []term) (query string, keyword bool, err error) {
	if len(terms) == 1 && terms[0].tag == "any" && terms[0].op == "has" {
		return terms[0].value, true, nil
	}

	clauses := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.tag == "any" {
			joiner := " or "
			if t.op == "!=" {
				joiner = " and "
			}
			parts := make([]string, len(anyFields))
			for i, f := range anyFields {
				parts[i] = clause(f, t.op, t.value)
			}
			clauses = append(clauses, "("+strings.Join(parts, joiner)+")")
			continue
		}

		field, ok := queryFields[t.tag]
		if !ok {
			return "", false, fmt.Errorf("unknown tag type: %s", t.tag)
		}
		clauses = append(clauses, clause(field, t.op, t.value))
	}
	return strings.Join(clauses, " and "), false, nil
}

func clause(field, op, value string) string {
	if numericFields[field] {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			if op == "has" {
				op = "="
			}
			return fmt.Sprintf("%s %s %d", field, op, n)
		}
	}
	return fmt.Sprintf("%s %s %s", field, op, winamp.QuoteQuery(value))
}
