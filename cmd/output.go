package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/facupepi/serviapp-cli/internal/api"
)

const (
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiReset  = "\033[0m"
)

func colorGreen(s string) string  { return ansiGreen + s + ansiReset }
func colorYellow(s string) string { return ansiYellow + s + ansiReset }
func colorRed(s string) string    { return ansiRed + s + ansiReset }

// printJSON renders v as indented JSON on stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printYAML renders v as YAML on stdout.
func printYAML(v interface{}) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(v)
}

// render picks the output format from the global flags; table is the
// fallback and is produced by the given function.
func render(v interface{}, table func()) error {
	if jsonOut {
		return printJSON(v)
	}
	if yamlOut {
		return printYAML(v)
	}
	if table != nil {
		table()
	}
	return nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// printError renders a failed operation. API errors carry a localized
// message; anything else prints as-is.
func printError(err error) {
	if apiErr, ok := api.AsError(err); ok {
		fmt.Fprintf(os.Stderr, "%s %s\n", colorRed("✗"), apiErr.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", colorRed("✗"), err)
}
