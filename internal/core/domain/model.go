package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedBody is returned by ParseBody for text that is not a sequence
// of `key: "value"` fields.
var ErrMalformedBody = errors.New("malformed token body")

// Semiotic classes produced by the taggers.
const (
	ClassCardinal = "cardinal"
	ClassName     = "name"
)

// Field is one key/value pair inside a tagged token.
type Field struct {
	Key   string
	Value string
}

// Token is a tagged span of the input, e.g.
//
//	tokens { cardinal { negative: "true" integer: "twenty three" } }
type Token struct {
	Class  string
	Fields []Field
	// Raw is the written form the token was tagged from.
	Raw string
}

// Get returns the value of the first field named key.
func (t Token) Get(key string) (string, bool) {
	for _, f := range t.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Body renders the fields of t the way taggers emit them:
// `negative: "true" integer: "twenty three"`.
func (t Token) Body() string {
	var sb strings.Builder
	for i, f := range t.Fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Key)
		sb.WriteString(": ")
		sb.WriteString(strconv.Quote(f.Value))
	}
	return sb.String()
}

// ParseBody is the inverse of Body.
func ParseBody(body string) ([]Field, error) {
	var fields []Field
	rest := strings.TrimSpace(body)
	for rest != "" {
		i := strings.Index(rest, ": ")
		if i <= 0 || strings.ContainsAny(rest[:i], " \"") {
			return nil, fmt.Errorf("%w: %q", ErrMalformedBody, body)
		}
		key := rest[:i]
		quoted, err := strconv.QuotedPrefix(rest[i+2:])
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedBody, body)
		}
		value, err := strconv.Unquote(quoted)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedBody, body)
		}
		fields = append(fields, Field{Key: key, Value: value})
		rest = strings.TrimLeft(rest[i+2+len(quoted):], " ")
	}
	return fields, nil
}

// String renders t in the serialized token format.
func (t Token) String() string {
	return "tokens { " + t.Class + " { " + t.Body() + " } }"
}

// Result holds the outcome of normalizing one piece of text.
type Result struct {
	Input      string
	Normalized string
	Tokens     []Token
	// Counts maps a semiotic class to the number of tokens tagged with it.
	Counts   map[string]int
	Duration time.Duration
}
