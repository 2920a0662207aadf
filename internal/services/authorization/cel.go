package authorization

import (
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/gatehouse-project/gatehouse/internal/entities"
)

// CELEngine compiles the boolean CEL expressions used by
// expression-gated rules. Expressions see a single variable, "resource",
// bound to the target object's attribute map.
type CELEngine struct {
	env *cel.Env
}

// NewCELEngine creates a CEL environment with the resource declaration.
func NewCELEngine() (*CELEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("resource", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &CELEngine{env: env}, nil
}

// Gate is a compiled boolean predicate over an object's attributes.
// Compilation happens once at registry population; evaluation per check.
type Gate struct {
	expression string
	program    cel.Program
}

// Compile compiles a boolean CEL expression into a Gate. A non-boolean
// expression is rejected at compile time.
func (e *CELEngine) Compile(expression string) (*Gate, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("failed to compile CEL expression %q: %w", expression, issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("CEL expression %q must return boolean, got: %s", expression, ast.OutputType())
	}
	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL program for %q: %w", expression, err)
	}
	return &Gate{expression: expression, program: program}, nil
}

// MustCompile is Compile for static rule tables.
func (e *CELEngine) MustCompile(expression string) *Gate {
	gate, err := e.Compile(expression)
	if err != nil {
		panic(err)
	}
	return gate
}

// Allows evaluates the gate against the object's attribute map.
func (g *Gate) Allows(obj entities.Attributed) (bool, error) {
	result, _, err := g.program.Eval(map[string]interface{}{
		"resource": obj.Attributes(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to evaluate CEL expression %q: %w", g.expression, err)
	}
	allowed, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("CEL expression %q did not evaluate to boolean, got: %T", g.expression, result.Value())
	}
	return allowed, nil
}

// Expression returns the source expression, for tooling and errors.
func (g *Gate) Expression() string { return g.expression }
