package scene

import (
	"fmt"
	"sort"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// Expression is a parsed animation expression. Text is the normalized
// rendering of the parse tree, which is what canonicalization compares:
// two expression animations are interchangeable only when this text
// coincides.
type Expression struct {
	Text        string
	Identifiers []string
}

// ParseExpression parses and normalizes an animation expression and
// collects the identifiers it references. Identifiers are the candidate
// reference-parameter names; which of them bind to nodes is decided by
// the scene document.
func ParseExpression(text string) (Expression, error) {
	tree, err := parser.Parse(text)
	if err != nil {
		return Expression{}, fmt.Errorf("invalid animation expression %q: %w", text, err)
	}

	v := &identifierCollector{seen: make(map[string]bool)}
	node := tree.Node
	ast.Walk(&node, v)
	sort.Strings(v.names)

	return Expression{
		Text:        node.String(),
		Identifiers: v.names,
	}, nil
}

type identifierCollector struct {
	seen  map[string]bool
	names []string
}

func (v *identifierCollector) Visit(node *ast.Node) {
	id, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}
	if !v.seen[id.Value] {
		v.seen[id.Value] = true
		v.names = append(v.names, id.Value)
	}
}
