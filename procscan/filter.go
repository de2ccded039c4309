package procscan

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over scan records.
type Filter struct {
	program *vm.Program
	rawExpr string
}

// CompileFilter builds a filter from an expression such as
// `name == "nginx" && env["MODE"] != "debug"`. Expressions see pid, ppid,
// name, cmdline, args and env, and must evaluate to a boolean.
func CompileFilter(exprStr string) (*Filter, error) {
	program, err := expr.Compile(exprStr, expr.Env(filterEnv(Record{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}
	return &Filter{
		program: program,
		rawExpr: exprStr,
	}, nil
}

// Match evaluates the filter against a single record.
func (f *Filter) Match(rec Record) (bool, error) {
	output, err := expr.Run(f.program, filterEnv(rec))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter expression %q: %w", f.rawExpr, err)
	}
	ok, _ := output.(bool)
	return ok, nil
}

// Apply keeps the records the filter matches, preserving order.
func (f *Filter) Apply(records []Record) ([]Record, error) {
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}

// filterEnv builds the evaluation environment for one record. The zero
// record doubles as the type-checking environment at compile time.
func filterEnv(rec Record) map[string]interface{} {
	env := rec.Env
	if env == nil {
		env = map[string]string{}
	}
	args := rec.Args
	if args == nil {
		args = []string{}
	}
	return map[string]interface{}{
		"pid":     int(rec.PID),
		"ppid":    int(rec.ParentPID),
		"name":    rec.Name,
		"cmdline": rec.Cmdline,
		"cwd":     rec.Cwd,
		"args":    args,
		"env":     env,
	}
}
