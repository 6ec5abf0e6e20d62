package diag

import "fmt"

// Location identifies a position in source code. It is a value type — safe
// to copy and compare.
type Location struct {
	filePath string
	line     int
	column   int
}

// Loc creates a Location using the provided file path, line and column.
func Loc(filePath string, line, column int) Location {
	return Location{filePath: filePath, line: line, column: column}
}

// FilePath returns the file path of the location.
func (l Location) FilePath() string { return l.filePath }

// Line returns the 1-based line number.
func (l Location) Line() int { return l.line }

// Column returns the 1-based column number, or 0 for "entire line".
func (l Location) Column() int { return l.column }

// String returns "filePath:line:column", or "filePath:line" when column is 0.
func (l Location) String() string {
	if l.column == 0 {
		return fmt.Sprintf("%s:%d", l.filePath, l.line)
	}
	return fmt.Sprintf("%s:%d:%d", l.filePath, l.line, l.column)
}
