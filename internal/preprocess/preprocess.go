// Package preprocess strips comments and splices .include directives,
// producing a flat line buffer where every line still carries its
// originating file and line number.
package preprocess

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/asmkit/asm8080/internal/diag"
	"github.com/asmkit/asm8080/internal/origin"
)

// MaxIncludeDepth bounds recursive .include splicing.
const MaxIncludeDepth = 16

// Line is one line of pre-processed source text together with the origin
// it traces back to.
type Line struct {
	Text   string
	Origin origin.Origin
}

var includeDirective = regexp.MustCompile(`^\s*\.include\s+"([^"]*)"\s*$`)

// Run splices includes starting from sourcePath/source and returns the
// flattened, comment-stripped line buffer. Diagnostics are recorded on d;
// Run never panics on malformed input.
func Run(source, sourcePath string, d *diag.Diagnostics) []Line {
	d.SetPhase("preprocess")
	open := make(map[string]bool)
	if sourcePath != "" {
		if abs, err := filepath.Abs(sourcePath); err == nil {
			open[pathKey(abs)] = true
		}
	}
	return expandSource(source, sourcePath, 0, open, d)
}

func pathKey(absPath string) string {
	sum := sha256.Sum256([]byte(absPath))
	return hex.EncodeToString(sum[:])
}

func expandSource(source, filePath string, depth int, open map[string]bool, d *diag.Diagnostics) []Line {
	rawLines := strings.Split(source, "\n")
	if n := len(rawLines); n > 1 && rawLines[n-1] == "" {
		// a trailing newline terminates the last line rather than starting a new one
		rawLines = rawLines[:n-1]
	}
	out := make([]Line, 0, len(rawLines))

	for i, raw := range rawLines {
		lineNo := i + 1
		text := stripComment(raw)

		if m := includeDirective.FindStringSubmatch(text); m != nil {
			included := expandInclude(m[1], filePath, lineNo, depth, open, d)
			out = append(out, included...)
			continue
		}

		out = append(out, Line{Text: text, Origin: origin.FileLine(filePath, lineNo)})
	}
	return out
}

func expandInclude(relPath, fromFile string, fromLine, depth int, open map[string]bool, d *diag.Diagnostics) []Line {
	if depth+1 > MaxIncludeDepth {
		d.Error(diag.KindStructure, d.LocIn(fromFile, fromLine, 0), "include recursion too deep")
		return nil
	}

	resolved := resolveIncludePath(relPath, fromFile)
	abs, err := filepath.Abs(resolved)
	if err != nil {
		abs = resolved
	}
	key := pathKey(abs)
	if open[key] {
		d.Error(diag.KindStructure, d.LocIn(fromFile, fromLine, 0), "circular .include of \""+relPath+"\"")
		return nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		d.Error(diag.KindIO, d.LocIn(fromFile, fromLine, 0), "cannot read included file \""+relPath+"\": "+err.Error())
		return nil
	}

	open[key] = true
	defer delete(open, key)

	return expandSource(string(data), resolved, depth+1, open, d)
}

func resolveIncludePath(relPath, fromFile string) string {
	if filepath.IsAbs(relPath) {
		return relPath
	}
	return filepath.Join(filepath.Dir(fromFile), relPath)
}

// stripComment removes everything from an unquoted ';' to the end of the
// line. A ';' inside a double-quoted string literal (as in DB "a;b") is not
// treated as a comment start.
func stripComment(line string) string {
	inString := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inString = !inString
		case ';':
			if !inString {
				return strings.TrimRight(line[:i], " \t\r")
			}
		}
	}
	return strings.TrimRight(line, " \t\r")
}
