// Package clocknow reports time.Now calls outside the clock package.
//
// Services read the current time from an injected clock.Clock so that tests
// can pin it. A direct time.Now elsewhere silently bypasses a fixed clock.
// Measuring latency is the usual legitimate exception; mark it with
// //nolint:clocknow.
package clocknow

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// Analyzer is the clocknow analyzer.
var Analyzer = &analysis.Analyzer{
	Name: "clocknow",
	Doc:  "checks that the current time is read through clock.Clock instead of time.Now",
	Run:  run,
}

const message = "use an injected clock.Clock instead of time.Now()"

func run(pass *analysis.Pass) (any, error) {
	if isClockPackage(pass.Pkg.Path()) {
		return nil, nil
	}

	for _, file := range pass.Files {
		nolintLines := nolintLines(pass, file)

		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok || !isTimeNow(pass.TypesInfo, call) {
				return true
			}
			if nolintLines[pass.Fset.Position(call.Pos()).Line] {
				return true
			}
			pass.Reportf(call.Pos(), message)
			return true
		})
	}
	return nil, nil
}

func isClockPackage(path string) bool {
	return path == "clock" || strings.HasSuffix(path, "/clock")
}

// isTimeNow resolves the callee through type information, so renamed
// imports of package time are caught too.
func isTimeNow(info *types.Info, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return false
	}
	fn, ok := info.Uses[sel.Sel].(*types.Func)
	return ok && fn.Pkg() != nil && fn.Pkg().Path() == "time" && fn.Name() == "Now"
}

// nolintLines returns the lines a //nolint or //nolint:clocknow comment
// covers: its own line and the one after it.
func nolintLines(pass *analysis.Pass, file *ast.File) map[int]bool {
	lines := make(map[int]bool)
	for _, cg := range file.Comments {
		for _, c := range cg.List {
			text := strings.TrimPrefix(c.Text, "//")
			directive, _, _ := strings.Cut(strings.TrimSpace(text), " ")
			if directive != "nolint" && !(strings.HasPrefix(directive, "nolint:") && strings.Contains(directive, "clocknow")) {
				continue
			}
			line := pass.Fset.Position(c.Pos()).Line
			lines[line] = true
			lines[line+1] = true
		}
	}
	return lines
}
