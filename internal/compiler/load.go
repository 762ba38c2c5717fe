package compiler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/sharpj/internal/ir"
)

// ErrUnknownFormat is returned for a document whose extension is not one of
// .cue, .json, .yaml or .yml.
var ErrUnknownFormat = errors.New("unknown document format")

// Extensions lists the file extensions LoadFile accepts.
var Extensions = []string{".cue", ".json", ".yaml", ".yml"}

// LoadFile reads and compiles an IR program document.
func LoadFile(path string) (*ir.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return CompileBytes(data, path)
}

// CompileBytes compiles an in-memory IR program document. The extension of
// name selects the format and name labels error positions: .cue and .json
// are compiled as CUE directly, .yaml and .yml are decoded with yaml.v3 and
// re-encoded as JSON first.
func CompileBytes(data []byte, name string) (*ir.Program, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".cue", ".json":
	case ".yaml", ".yml":
		converted, err := yamlToJSON(data)
		if err != nil {
			return nil, &CompileError{Field: "yaml", Message: err.Error()}
		}
		data = converted
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, ext, strings.Join(Extensions, ", "))
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(name))
	return CompileProgram(v)
}

// IsProgramFile reports whether path has an extension LoadFile accepts.
func IsProgramFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return []byte("{}"), nil
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert to JSON: %w", err)
	}
	return out, nil
}
