// Package dialog parses brace-delimited dialog scripts into an addressable
// graph of NPC prompts and player choices.
//
// A script line carries seven brace groups followed by an optional label:
//
//	{number}{text}{female_text}{intelligence}{test}{response}{result}Label
//
// A line without a response is an NPC prompt. A line with a response is a
// player choice that advances the conversation to the prompt it names.
package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// Start is the first NPC prompt of a well-formed script.
	Start = 1
	// End is the response value that closes a conversation branch.
	End = 0

	fieldCount = 7
)

// Kind distinguishes NPC prompts from player choices.
type Kind int

const (
	KindPrompt Kind = iota
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindPrompt:
		return "prompt"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result and test opcodes understood by the conversation engine.
const (
	TestFollower = "fo"
	TestWaiting  = "wa"

	ResultFollow = "uw"
	ResultWait   = "wa"
	ResultLeave  = "lv"
	ResultSO     = "so" // reserved
	ResultSC     = "sc" // reserved
)

var (
	ErrMissingField   = errors.New("missing mandatory field")
	ErrInvalidNumber  = errors.New("line number must be a non-negative integer")
	ErrMalformedBrace = errors.New("closing brace before opening brace")
)

// ParseError reports a script line that could not be converted.
type ParseError struct {
	Raw    string // offending line
	LineNo int    // 1-based position in the source, 0 when unknown
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("line %d: %s: %v: %q", e.LineNo, e.Field, e.Err, e.Raw)
	}
	return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Raw)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Line is one node of a dialog graph.
type Line struct {
	Number       int
	Kind         Kind
	Text         string
	FemaleText   string // empty when absent
	Intelligence *int   // minimum intelligence, choices only
	Test         string // precondition opcode, choices only
	Response     *int   // next prompt, set on choices only
	Result       string // effect opcode, choices only

	// Choices lists the choice lines owned by a prompt, in script order.
	Choices []int
	// Owner is the prompt a choice belongs to.
	Owner int
}

// IsPrompt reports whether the line is spoken by the NPC.
func (l *Line) IsPrompt() bool { return l.Kind == KindPrompt }

// IsChoice reports whether the line is a player reply.
func (l *Line) IsChoice() bool { return l.Kind == KindChoice }

// DisplayText returns the text shown for the line, preferring FemaleText
// when female is set and an alternate text exists.
func (l *Line) DisplayText(female bool) string {
	if female && l.FemaleText != "" {
		return l.FemaleText
	}
	return l.Text
}

// ParseLine converts one raw script line into a Line. Number and text are
// mandatory; malformed intelligence and response values are treated as
// absent.
func ParseLine(raw string) (*Line, error) {
	parts, _, err := braceFields(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Field: "braces", Err: err}
	}
	if len(parts) < 1 {
		return nil, &ParseError{Raw: raw, Field: "number", Err: ErrMissingField}
	}
	number, err := parseIndex(parts[0])
	if err != nil {
		return nil, &ParseError{Raw: raw, Field: "number", Err: ErrInvalidNumber}
	}
	if len(parts) < 2 {
		return nil, &ParseError{Raw: raw, Field: "text", Err: ErrMissingField}
	}

	l := &Line{
		Number:     number,
		Text:       parts[1],
		FemaleText: field(parts, 2),
		Test:       field(parts, 4),
		Result:     field(parts, 6),
		Choices:    []int{},
	}
	if v, err := strconv.ParseInt(field(parts, 3), 10, 32); err == nil {
		n := int(v)
		l.Intelligence = &n
	}
	if n, err := parseIndex(field(parts, 5)); err == nil {
		l.Response = &n
	}
	if l.Response != nil {
		l.Kind = KindChoice
	}
	return l, nil
}

// braceFields pairs the i-th '{' with the i-th '}' and returns up to seven
// trimmed fields plus whatever follows the seventh closing brace.
func braceFields(raw string) ([]string, string, error) {
	var opens, closes []int
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			opens = append(opens, i)
		case '}':
			closes = append(closes, i)
		}
	}
	n := min(len(opens), len(closes), fieldCount)
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if closes[i] < opens[i] {
			return nil, "", ErrMalformedBrace
		}
		parts = append(parts, strings.TrimSpace(raw[opens[i]+1:closes[i]]))
	}
	var label string
	if n == fieldCount {
		label = raw[closes[n-1]+1:]
	}
	return parts, label, nil
}

// parseIndex reads a non-negative line number. One leading '+' is allowed
// and values that do not fit in an int are rejected.
func parseIndex(s string) (int, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, strconv.IntSize-1)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

func field(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// Format renders the line back into script form without a trailing label.
func (l *Line) Format() string {
	return "{" + strings.Join(l.fields(), "}{") + "}"
}

func (l *Line) fields() []string {
	return []string{
		strconv.Itoa(l.Number),
		l.Text,
		l.FemaleText,
		optInt(l.Intelligence),
		l.Test,
		optInt(l.Response),
		l.Result,
	}
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
