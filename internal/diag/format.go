package diag

import (
	"fmt"
	"path/filepath"
)

// Format renders an *Entry in the pipeline's user-visible failure shape:
//
//	<absPath>:<origLine>: <cleanedMessage>
//	> <sourceText>
//	file:///<absPath>:<origLine>
//
// If the entry carries no snippet, the "> " line is omitted.
func Format(e *Entry) string {
	loc := e.Location()
	abs, err := filepath.Abs(loc.FilePath())
	if err != nil {
		abs = loc.FilePath()
	}

	out := fmt.Sprintf("%s:%d: %s", abs, loc.Line(), e.Message())
	if e.Snippet() != "" {
		out += fmt.Sprintf("\n> %s", e.Snippet())
	}
	out += fmt.Sprintf("\nfile:///%s:%d", abs, loc.Line())
	return out
}
