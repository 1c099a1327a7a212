package dialog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

var ErrOrphanChoice = errors.New("choice appears before any prompt")

const bom = "\ufeff"

// Graph is a loaded script addressed by line number. It is read-only once
// Load returns and may be shared between conversations.
type Graph struct {
	lines      map[int]*Line
	duplicates []int
}

// Line returns the line with the given number.
func (g *Graph) Line(number int) (*Line, bool) {
	l, ok := g.lines[number]
	return l, ok
}

// Len returns the number of distinct lines in the graph.
func (g *Graph) Len() int { return len(g.lines) }

// Numbers returns every line number in ascending order.
func (g *Graph) Numbers() []int {
	nums := make([]int, 0, len(g.lines))
	for n := range g.lines {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Duplicates returns line numbers that appeared more than once while
// loading. The last occurrence is the one kept.
func (g *Graph) Duplicates() []int { return g.duplicates }

// Load reads a script and assembles its graph. Surrounding whitespace is
// trimmed and lines that do not then begin with '{' are skipped. A script
// with no such lines yields an empty graph.
func Load(r io.Reader) (*Graph, error) {
	g := &Graph{lines: make(map[int]*Line)}
	seen := make(map[int]bool)
	current, havePrompt := 0, false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		if lineNo == 1 {
			raw = strings.TrimPrefix(raw, bom)
		}
		raw = strings.TrimSpace(raw)
		if !strings.HasPrefix(raw, "{") {
			continue
		}

		l, err := ParseLine(raw)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.LineNo = lineNo
			}
			return nil, err
		}

		if l.IsPrompt() {
			current, havePrompt = l.Number, true
		} else {
			owner, ok := g.lines[current]
			if !havePrompt || !ok {
				return nil, &ParseError{Raw: raw, LineNo: lineNo, Field: "response", Err: ErrOrphanChoice}
			}
			owner.Choices = append(owner.Choices, l.Number)
			l.Owner = current
		}

		if seen[l.Number] {
			g.duplicates = append(g.duplicates, l.Number)
		}
		seen[l.Number] = true
		g.lines[l.Number] = l
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return g, nil
}

// LoadFile loads the script stored at path.
func LoadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	g, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Validate reports structural problems a conversation would trip over:
// a missing start prompt, responses that lead nowhere or into a choice,
// and duplicate line numbers.
func (g *Graph) Validate() []error {
	var errs []error
	if l, ok := g.lines[Start]; !ok {
		errs = append(errs, fmt.Errorf("start line %d is missing", Start))
	} else if !l.IsPrompt() {
		errs = append(errs, fmt.Errorf("start line %d is a choice, not a prompt", Start))
	}

	for _, n := range g.Numbers() {
		l := g.lines[n]
		if !l.IsChoice() || *l.Response == End {
			continue
		}
		target, ok := g.lines[*l.Response]
		switch {
		case !ok:
			errs = append(errs, fmt.Errorf("line %d responds to missing line %d", n, *l.Response))
		case !target.IsPrompt():
			errs = append(errs, fmt.Errorf("line %d responds to choice line %d", n, *l.Response))
		}
	}

	for _, n := range g.duplicates {
		errs = append(errs, fmt.Errorf("line number %d is used more than once", n))
	}
	return errs
}
