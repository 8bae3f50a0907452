// Package storage handles snippet persistence in SQLite and JSONL interchange files.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/matsen/snip/internal/snippet"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// ReadAll reads all snippets from a JSONL file. A keyword that appears on more
// than one line is an error, since an import would silently keep only the last.
func ReadAll(path string) ([]snippet.Snippet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Missing file reads as empty
		}
		return nil, fmt.Errorf("opening snippets file: %w", err)
	}
	defer f.Close()

	var snippets []snippet.Snippet
	seen := make(map[string]int)
	scanner := bufio.NewScanner(f)

	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var s snippet.Snippet
		if err := json.Unmarshal(line, &s); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		if first, ok := seen[s.Keyword]; ok {
			return nil, fmt.Errorf("duplicate keyword %q on line %d (first on line %d)", s.Keyword, lineNum, first)
		}
		seen[s.Keyword] = lineNum
		snippets = append(snippets, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading snippets file: %w", err)
	}

	return snippets, nil
}

// WriteAll writes all snippets to a JSONL file, replacing existing content.
func WriteAll(path string, snippets []snippet.Snippet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snippets file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, s := range snippets {
		data, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encoding snippet %d: %w", i, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing snippet %d: %w", i, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing snippets file: %w", err)
	}
	return f.Close()
}
