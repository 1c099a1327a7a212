// Command prettify rewrites a dialog script with aligned columns, next to
// the input file as <name>_pretty.dlg, or in place with -w.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/dialog-engine/pkg/dialog"
)

func main() {
	args := os.Args[1:]
	inPlace := len(args) > 0 && args[0] == "-w"
	if inPlace {
		args = args[1:]
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-w] <script.dlg>\n", os.Args[0])
		os.Exit(1)
	}

	out, err := prettify(args[0], inPlace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", out)
}

func prettify(path string, inPlace bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open script: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var buf bytes.Buffer
	if err := dialog.FormatScript(f, &buf); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	out := path
	if !inPlace {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "_pretty.dlg"
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}
