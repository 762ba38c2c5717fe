package compiler

import (
	_ "embed"

	"cuelang.org/go/cue"
)

//go:embed schema.cue
var schemaSource string

// programSchema returns the #Program definition compiled in ctx.
func programSchema(ctx *cue.Context) (cue.Value, error) {
	s := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := s.Err(); err != nil {
		return cue.Value{}, err
	}
	return s.LookupPath(cue.ParsePath("#Program")), nil
}
