package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/snapc/internal/diag"
	"github.com/roach88/snapc/internal/ir"
	"github.com/roach88/snapc/internal/parse"
	"github.com/roach88/snapc/internal/printer"
)

// Output is one source file compiled end to end.
type Output struct {
	Result *Result
	// Code is the printed module.
	Code string
	// Manifests holds one sealed manifest per snapshot, in definition order.
	Manifests []ir.Manifest
}

// CompileSource parses src, transforms it and prints the result.
//
// Syntax errors are reported to sink as ErrSyntax and yield a nil Output
// with a nil error, the same way other user errors are reported. Internal
// errors are reported as ErrInternal and also returned.
func CompileSource(ctx context.Context, src []byte, opts Options, sink diag.Sink) (*Output, error) {
	mod, err := parse.Parse(ctx, opts.Filename, src)
	if err != nil {
		var syn *parse.SyntaxError
		if errors.As(err, &syn) {
			diag.Errorf(sink, diag.ErrSyntax, syn.Pos, "%s", syn.Message)
			return nil, nil
		}
		return nil, err
	}

	res, err := Transform(mod, opts, sink)
	if err != nil {
		var ie *diag.InternalError
		if errors.As(err, &ie) {
			diag.Errorf(sink, diag.ErrInternal, ie.Pos, "%s", ie.Message)
		}
		return nil, err
	}

	out := &Output{
		Result:    res,
		Code:      printer.Print(res.Module),
		Manifests: make([]ir.Manifest, 0, len(res.Snapshots)),
	}
	for _, snap := range res.Snapshots {
		m, err := snap.Manifest(opts.Filename, opts.Target)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", snap.UID, err)
		}
		out.Manifests = append(out.Manifests, m)
	}
	return out, nil
}
