package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/snapc/internal/compiler"
	"github.com/roach88/snapc/internal/diag"
)

// Run compiles the scenario's source and evaluates its assertions.
//
// An error is returned only when the scenario cannot be executed at all
// (unreadable source, invalid options, internal compiler errors). Failed
// assertions are recorded in Result.Errors.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	opts, err := scenario.Options.CompilerOptions(scenario.Filename)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	// Scenario runs are quiet unless a test installs its own default.
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	src, err := scenario.SourceBytes()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	sink := &diag.Collector{}
	out, err := compiler.CompileSource(ctx, src, opts, sink)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Diagnostics = sink.Diagnostics()
	if out != nil {
		result.Output = out.Code
		result.Snapshots = out.Manifests
	}

	for _, a := range scenario.Assertions {
		if err := evaluateAssertion(result, a); err != nil {
			result.AddError(err.Error())
		}
	}
	return result, nil
}
