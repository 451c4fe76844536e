package cmd

import (
	"fmt"

	"github.com/emberlang/ember/builtins"
	"github.com/emberlang/ember/eval"
	"github.com/emberlang/ember/pkg/ast"
	"github.com/emberlang/ember/pkg/dynamic"
	"github.com/emberlang/ember/pkg/token"
	"github.com/spf13/cobra"
)

var demoName string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a canned demo program through the evaluator",
	Long: `demo drives one of a small set of hand-built programs through
eval.Evaluator.Run. Real Ember source text has no lexer/parser in this
core, so these programs are built directly as pkg/ast trees -- the same
role integration-test fixtures play for a full interpreter.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVar(&demoName, "program", "sum", "which demo program to run: sum, fizz, array")
}

func runDemo(_ *cobra.Command, args []string) error {
	prog, ok := demoPrograms[demoName]
	if !ok {
		return fmt.Errorf("unknown demo program %q", demoName)
	}

	lib := builtins.NewLibrary()
	resolver := builtins.NewResolver(lib)
	modules := builtins.NewStaticModuleResolver()

	scope := eval.NewScope()
	imports := eval.NewImports()
	ev := eval.NewEvaluator()

	if verbose {
		fmt.Printf("running demo %q...\n", demoName)
	}

	result, err := ev.Run(scope, imports, lib, resolver, modules, eval.DefaultConfig(), prog())
	if err != nil {
		return fmt.Errorf("demo %q failed: %w", demoName, err)
	}
	fmt.Printf("result: %s\n", result.String())
	return nil
}

var demoPrograms = map[string]func() []ast.Stmt{
	"sum":   sumDemo,
	"fizz":  fizzDemo,
	"array": arrayDemo,
}

var noPos = token.Position{Line: 1, Column: 1}

// sumDemo builds: let total = 0; let i = 1; while i <= 5 { total += i; i += 1; } total
func sumDemo() []ast.Stmt {
	return []ast.Stmt{
		ast.NewLetDecl(noPos, "total", ast.NewLiteral(noPos, dynamic.Int(0)), false),
		ast.NewLetDecl(noPos, "i", ast.NewLiteral(noPos, dynamic.Int(1)), false),
		ast.NewWhile(noPos,
			ast.NewFnCall(noPos, "<=", []ast.Expr{ast.NewVariable(noPos, "i"), ast.NewLiteral(noPos, dynamic.Int(5))}),
			ast.NewBlock(noPos, []ast.Stmt{
				ast.NewExprStmt(noPos, ast.NewAssignment(noPos, ast.NewVariable(noPos, "total"), "+", ast.NewVariable(noPos, "i"))),
				ast.NewExprStmt(noPos, ast.NewAssignment(noPos, ast.NewVariable(noPos, "i"), "+", ast.NewLiteral(noPos, dynamic.Int(1)))),
			}),
		),
		ast.NewExprStmt(noPos, ast.NewVariable(noPos, "total")),
	}
}

// fizzDemo builds a loop over 1..15 that sets out to "FizzBuzz" when n
// is a multiple of 15 and to the literal string "n" otherwise. It prints
// nothing and returns out's final value ("FizzBuzz", from n = 15).
func fizzDemo() []ast.Stmt {
	return []ast.Stmt{
		ast.NewLetDecl(noPos, "n", ast.NewLiteral(noPos, dynamic.Int(1)), false),
		ast.NewLetDecl(noPos, "out", ast.NewLiteral(noPos, dynamic.Str("")), false),
		ast.NewWhile(noPos,
			ast.NewFnCall(noPos, "<=", []ast.Expr{ast.NewVariable(noPos, "n"), ast.NewLiteral(noPos, dynamic.Int(15))}),
			ast.NewBlock(noPos, []ast.Stmt{
				ast.NewIf(noPos,
					ast.NewFnCall(noPos, "==", []ast.Expr{
						ast.NewFnCall(noPos, "%", []ast.Expr{ast.NewVariable(noPos, "n"), ast.NewLiteral(noPos, dynamic.Int(15))}),
						ast.NewLiteral(noPos, dynamic.Int(0)),
					}),
					ast.NewBlock(noPos, []ast.Stmt{
						ast.NewExprStmt(noPos, ast.NewAssignment(noPos, ast.NewVariable(noPos, "out"), "", ast.NewLiteral(noPos, dynamic.Str("FizzBuzz")))),
					}),
					ast.NewBlock(noPos, []ast.Stmt{
						ast.NewExprStmt(noPos, ast.NewAssignment(noPos, ast.NewVariable(noPos, "out"), "", ast.NewLiteral(noPos, dynamic.Str("n")))),
					}),
				),
				ast.NewExprStmt(noPos, ast.NewAssignment(noPos, ast.NewVariable(noPos, "n"), "+", ast.NewLiteral(noPos, dynamic.Int(1)))),
			}),
		),
		ast.NewExprStmt(noPos, ast.NewVariable(noPos, "out")),
	}
}

// arrayDemo builds: let xs = [1, 2, 3]; push(xs, 4); len(xs)
func arrayDemo() []ast.Stmt {
	return []ast.Stmt{
		ast.NewLetDecl(noPos, "xs", ast.NewArrayLiteral(noPos, []ast.Expr{
			ast.NewLiteral(noPos, dynamic.Int(1)),
			ast.NewLiteral(noPos, dynamic.Int(2)),
			ast.NewLiteral(noPos, dynamic.Int(3)),
		}), false),
		ast.NewExprStmt(noPos, ast.NewFnCall(noPos, "push", []ast.Expr{
			ast.NewVariable(noPos, "xs"),
			ast.NewLiteral(noPos, dynamic.Int(4)),
		})),
		ast.NewExprStmt(noPos, ast.NewFnCall(noPos, "len", []ast.Expr{ast.NewVariable(noPos, "xs")})),
	}
}
