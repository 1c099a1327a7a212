package dialog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FormatScript rewrites a script with every brace group padded to a common
// column width. Numeric fields are right-aligned, text fields left-aligned,
// and trailing labels are kept. Lines that are not script lines are dropped.
func FormatScript(r io.Reader, w io.Writer) error {
	type row struct {
		fields []string
		label  string
	}
	var rows []row
	var widths [fieldCount]int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), bom))
		if !strings.HasPrefix(raw, "{") {
			continue
		}
		if _, err := ParseLine(raw); err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.LineNo = lineNo
			}
			return err
		}
		fields, label, err := braceFields(raw)
		if err != nil {
			return &ParseError{Raw: raw, LineNo: lineNo, Field: "braces", Err: err}
		}
		for len(fields) < fieldCount {
			fields = append(fields, "")
		}
		for i, f := range fields {
			widths[i] = max(widths[i], lipgloss.Width(f))
		}
		rows = append(rows, row{fields: fields, label: strings.TrimSpace(label)})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}

	bw := bufio.NewWriter(w)
	for _, rw := range rows {
		padded := make([]string, fieldCount)
		for i, f := range rw.fields {
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(f))
			if isDigits(f) {
				padded[i] = pad + f
			} else {
				padded[i] = f + pad
			}
		}
		line := "{ " + strings.Join(padded, " }{ ") + " }"
		if rw.label != "" {
			line += " " + rw.label
		}
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
