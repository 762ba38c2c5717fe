package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roach88/sharpj/internal/compiler"
	"github.com/roach88/sharpj/internal/emit"
	"github.com/roach88/sharpj/internal/fold"
	"github.com/roach88/sharpj/internal/ir"
	"github.com/roach88/sharpj/internal/store"
)

// Transpiler turns IR programs into target source text.
type Transpiler struct {
	dialect *emit.Dialect
	fold    bool
	store   *store.Store
	logger  *slog.Logger
	ids     IDGenerator
}

// Option configures a Transpiler.
type Option func(*Transpiler)

// WithFolding enables or disables the constant-folding pass. Default: enabled.
func WithFolding(enabled bool) Option {
	return func(t *Transpiler) {
		t.fold = enabled
	}
}

// WithStore enables the output cache and run history.
func WithStore(s *store.Store) Option {
	return func(t *Transpiler) {
		t.store = s
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Transpiler) {
		t.logger = l
	}
}

// WithIDGenerator sets the run ID generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(t *Transpiler) {
		t.ids = g
	}
}

// New creates a Transpiler for dialect d. A nil dialect means Java.
func New(d *emit.Dialect, opts ...Option) *Transpiler {
	if d == nil {
		d = emit.Java
	}
	t := &Transpiler{
		dialect: d,
		fold:    true,
		ids:     UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.logger == nil {
		t.logger = slog.Default()
	}
	return t
}

// Dialect returns the target dialect.
func (t *Transpiler) Dialect() *emit.Dialect {
	return t.dialect
}

// Result is the outcome of one run.
type Result struct {
	RunID      string
	Source     string
	FileName   string // suggested output file name, see emit.OutputFileName
	Output     string
	Program    *ir.Program // tree that was emitted; nil on a cache hit
	Stats      fold.Stats
	InputHash  string
	OutputHash string
	Folded     bool
	Cached     bool
	Recorded   bool // run row written to the store
}

// Run transpiles prog. See RunSource.
func (t *Transpiler) Run(ctx context.Context, prog *ir.Program) (*Result, error) {
	return t.RunSource(ctx, prog, "")
}

// RunSource transpiles prog, recording source (typically the input path) in
// the run history and using it to name the output file.
//
// Validation and emission failures are returned as *RunError. Cache and
// history failures are logged and do not fail the run.
func (t *Transpiler) RunSource(ctx context.Context, prog *ir.Program, source string) (*Result, error) {
	res := &Result{
		RunID:    t.ids.Generate(),
		Source:   source,
		FileName: emit.OutputFileName(source, t.dialect),
		Folded:   t.fold,
	}
	log := t.logger.With("run_id", res.RunID)
	log.Info("run starting", "source", source, "target", t.dialect.Name, "fold", t.fold)

	if errs := compiler.Validate(prog); len(errs) > 0 {
		log.Warn("validation failed", "errors", len(errs), "first", errs[0].Error())
		return nil, validationError(errs)
	}

	hash, err := ir.ProgramHash(prog)
	if err != nil {
		return nil, &RunError{Stage: StageHash, Code: CodeHash, Err: err}
	}
	res.InputHash = hash

	if err := canceled(ctx, StageHash); err != nil {
		return nil, err
	}

	key := store.CacheKey{InputHash: hash, Target: t.dialect.Name, Folded: t.fold, ToolVersion: ir.ToolVersion}
	if out, ok := t.lookup(ctx, log, key); ok {
		res.Output = out
		res.Cached = true
	} else {
		emitted := prog
		if t.fold {
			var stats fold.Stats
			emitted, stats = fold.FoldWithStats(prog)
			res.Stats = stats
			log.Debug("fold complete",
				"binary_folded", stats.BinaryFolded,
				"unary_folded", stats.UnaryFolded,
				"division_by_zero_skipped", stats.DivisionByZeroSkipped,
				"unfoldable", stats.Unfoldable,
			)
		}

		if err := canceled(ctx, StageEmit); err != nil {
			return nil, err
		}

		out, err := emit.Emit(emitted, t.dialect)
		if err != nil {
			return nil, emitError(err)
		}
		res.Program = emitted
		res.Output = out
	}
	res.OutputHash = ir.OutputHash(res.Output)

	t.record(ctx, log, res)

	log.Info("run finished", "cached", res.Cached, "output_hash", res.OutputHash, "bytes", len(res.Output))
	return res, nil
}

func (t *Transpiler) lookup(ctx context.Context, log *slog.Logger, key store.CacheKey) (string, bool) {
	if t.store == nil {
		return "", false
	}
	out, found, err := t.store.LookupOutput(ctx, key)
	if err != nil {
		log.Warn("cache lookup failed", "error", err)
		return "", false
	}
	if found {
		log.Info("cache hit", "input_hash", key.InputHash)
	} else {
		log.Debug("cache miss", "input_hash", key.InputHash)
	}
	return out, found
}

func (t *Transpiler) record(ctx context.Context, log *slog.Logger, res *Result) {
	if t.store == nil {
		return
	}
	run := store.Run{
		ID:          res.RunID,
		InputHash:   res.InputHash,
		Target:      t.dialect.Name,
		Folded:      res.Folded,
		Source:      res.Source,
		Stats:       res.Stats,
		Cached:      res.Cached,
		ToolVersion: ir.ToolVersion,
	}
	if _, err := t.store.WriteRun(ctx, run, res.Output); err != nil {
		log.Error("store write failed", "error", err)
		return
	}
	res.Recorded = true
}

func canceled(ctx context.Context, stage Stage) error {
	if err := ctx.Err(); err != nil {
		return &RunError{Stage: stage, Code: CodeCanceled, Err: err}
	}
	return nil
}

func emitError(err error) *RunError {
	re := &RunError{Stage: StageEmit, Code: CodeUnsupported, Err: err}
	var une *emit.UnsupportedNodeError
	if errors.As(err, &une) {
		re.Location = une.Path
	}
	return re
}
