package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

// Stdout and Stderr are swapped out by tests.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Error prints an error line to Stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(Stderr, errorStyle.Render("ERROR:")+" "+fmt.Sprintf(format, args...))
}

// JSON writes v as indented JSON to Stdout.
func JSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// JSONError writes a machine readable error object to Stdout.
func JSONError(code, message string) {
	JSON(map[string]string{"error": code, "message": message})
}
