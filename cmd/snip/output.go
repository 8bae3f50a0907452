package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matsen/snip/internal/snippet"
)

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable line.
func outputHuman(w io.Writer, format string, args ...interface{}) error {
	_, err := fmt.Fprintf(w, format+"\n", args...)
	return err
}

// PutResponse is the response for put.
type PutResponse struct {
	Status  string          `json:"status"`
	Snippet snippet.Snippet `json:"snippet"`
}

// GetResponse is the response for get. Message is always present so a found
// empty snippet is distinguishable only by Found.
type GetResponse struct {
	Keyword string `json:"keyword"`
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

// CatalogResponse is the response for catalog.
type CatalogResponse struct {
	Keywords []string `json:"keywords"`
	Count    int      `json:"count"`
}

// SearchResponse is the response for search.
type SearchResponse struct {
	Query    string            `json:"query"`
	Found    bool              `json:"found"`
	Snippets []snippet.Snippet `json:"snippets"`
}

// TransferResponse is the response for export and import.
type TransferResponse struct {
	Status string `json:"status"`
	Path   string `json:"path"`
	Count  int    `json:"count"`
}

// ConfigResponse is the response for config.
type ConfigResponse struct {
	DBPath       string `json:"db_path"`
	LogFile      string `json:"log_file"`
	LogLevel     string `json:"log_level"`
	GlobalConfig string `json:"global_config"`
}

// Human-readable message formats.
const (
	msgStored         = "Stored snippet as %s, hidden=%t"
	msgNotFound       = "Snippet not found: %s"
	msgCatalogEmpty   = "No snippets stored"
	msgSearchNotFound = "No snippets found matching %q"
	msgSearchMatch    = "%s: %s"
	msgExported       = "Exported %d snippets to %s"
	msgImported       = "Imported %d snippets from %s"
)
