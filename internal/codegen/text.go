package codegen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/asmkit/asm8080/internal/expr"
)

// applyEncoding parses ".encoding" arguments and updates the generator's
// text-encoding state for subsequent ".text" directives.
func (g *Generator) applyEncoding(items []string) error {
	if len(items) == 0 {
		return fmt.Errorf(".encoding requires an encoding name")
	}
	enc := unquote(items[0])
	switch enc {
	case "ascii", "screencodecommodore":
		g.textEncoding = enc
	default:
		return fmt.Errorf("unknown .encoding %q", enc)
	}
	if len(items) > 1 {
		caseMode := unquote(items[1])
		switch caseMode {
		case "mixed", "lower", "upper":
			g.textCase = caseMode
		default:
			return fmt.Errorf("unknown .encoding case %q", caseMode)
		}
	}
	return nil
}

func unquote(s string) string {
	s = trimSpaceQuotes(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// encodeTextBytes converts a decoded string literal's bytes per the
// current .encoding/.text-case state.
func (g *Generator) encodeTextBytes(text string) []byte {
	out := make([]byte, len(text))
	for i := 0; i < len(text); i++ {
		out[i] = encodeTextByte(text[i], g.textEncoding, g.textCase)
	}
	return out
}

func applyTextCase(ch byte, mode string) byte {
	switch mode {
	case "lower":
		if ch >= 'A' && ch <= 'Z' {
			return ch + ('a' - 'A')
		}
	case "upper":
		if ch >= 'a' && ch <= 'z' {
			return ch - ('a' - 'A')
		}
	}
	return ch
}

// encodeTextByte applies the current .text-case transform, then the
// .encoding transform (ascii is a no-op; screencodecommodore maps into
// Commodore screen-code space).
func encodeTextByte(ch byte, encoding, caseMode string) byte {
	ch = applyTextCase(ch, caseMode)
	if encoding == "screencodecommodore" {
		return toScreenCode(ch)
	}
	return ch
}

// toScreenCode maps an ASCII byte onto its Commodore screen-code
// equivalent: letters land at 1-26 regardless of case, everything else
// below 0x40 passes through unchanged, matching the common PETSCII
// screen-code convention used by cc65/VICE.
func toScreenCode(ch byte) byte {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return ch - 'A' + 1
	case ch >= 'a' && ch <= 'z':
		return ch - 'a' + 1
	case ch < 0x40:
		return ch
	default:
		return ch & 0x3F
	}
}

// loadIncbin resolves and reads the file named by an ".incbin" statement,
// relative to the directory of the file the statement appears in.
func (g *Generator) loadIncbin(s stmt, pc int64) ([]byte, error) {
	if len(s.dataItems) == 0 {
		return nil, fmt.Errorf(".incbin requires a file path")
	}
	path := unquote(s.dataItems[0])

	var off, length int64
	haveLength := false
	if len(s.dataItems) > 1 {
		v, err := expr.Eval(s.dataItems[1], g.env(pc))
		if err != nil {
			return nil, fmt.Errorf("invalid .incbin offset: %w", err)
		}
		off = v
	}
	if len(s.dataItems) > 2 {
		v, err := expr.Eval(s.dataItems[2], g.env(pc))
		if err != nil {
			return nil, fmt.Errorf("invalid .incbin length: %w", err)
		}
		length = v
		haveLength = true
	}

	return readIncbinFile(path, g.currentFile, off, length, haveLength)
}

func readIncbinFile(path, fromFile string, off, length int64, haveLength bool) ([]byte, error) {
	resolved := path
	if !filepath.IsAbs(path) {
		resolved = filepath.Join(filepath.Dir(fromFile), path)
	}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if off > 0 {
		if _, err := f.Seek(off, io.SeekStart); err != nil {
			return nil, err
		}
	}

	if haveLength {
		buf := make([]byte, length)
		n, err := io.ReadFull(f, buf)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return buf[:n], nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return data, nil
}
