package emit

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roach88/sharpj/internal/ir"
)

// Dialect describes a C-family target language.
type Dialect struct {
	Name      string // registry key, e.g. "java"
	Extension string // output file extension without the dot
	Indent    string // one level of indentation

	// ModuleFormat renders the module declaration; %s is the lower-cased namespace.
	ModuleFormat string

	// Types maps semantic primitive tags to target type names. Unknown tags
	// pass through unchanged.
	Types map[string]string

	// Symbols maps every operation kind the dialect supports to its spelling.
	Symbols map[ir.OpKind]string
}

// Java is the Java dialect.
var Java = &Dialect{
	Name:         "java",
	Extension:    "java",
	Indent:       "    ",
	ModuleFormat: "package %s;",
	Types: map[string]string{
		"int":    "int",
		"double": "double",
		"float":  "float",
		"long":   "long",
		"void":   "void",
		"string": "String",
		"bool":   "boolean",
	},
	Symbols: identitySymbols(),
}

var dialects = map[string]*Dialect{
	Java.Name: Java,
}

func identitySymbols() map[ir.OpKind]string {
	m := make(map[ir.OpKind]string)
	for _, op := range ir.AllOps() {
		m[op] = op.Symbol()
	}
	return m
}

// LookupDialect returns the registered dialect with the given name.
// Matching ignores case.
func LookupDialect(name string) (*Dialect, error) {
	if d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("unknown target %q (available: %s)", name, strings.Join(DialectNames(), ", "))
}

// DialectNames returns the registered dialect names in sorted order.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MapType returns the target spelling of a type tag.
func (d *Dialect) MapType(tag string) string {
	if t, ok := d.Types[tag]; ok {
		return t
	}
	return tag
}

// Symbol returns the target spelling of op and whether the dialect supports it.
func (d *Dialect) Symbol(op ir.OpKind) (string, bool) {
	s, ok := d.Symbols[op]
	return s, ok
}

func (d *Dialect) moduleDecl(namespace string) string {
	return fmt.Sprintf(d.ModuleFormat, cases.Lower(language.Und).String(namespace))
}

// OutputFileName derives the output file name from an input path: the base
// name with its extension replaced by the dialect's. An empty input yields
// "output.<ext>".
func OutputFileName(input string, d *Dialect) string {
	base := "output"
	if input != "" {
		name := filepath.Base(input)
		base = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return base + "." + d.Extension
}
