package codegen

import "strings"

// Builder accumulates generated source text with indentation
// bookkeeping. It is exclusively owned by one compilation run.
type Builder struct {
	sb     strings.Builder
	indent int
}

// NewBuilder creates an empty output buffer.
func NewBuilder() *Builder {
	return &Builder{}
}

// WriteLine appends one indented line.
func (b *Builder) WriteLine(line string) {
	if line == "" {
		b.sb.WriteByte('\n')
		return
	}
	b.sb.WriteString(strings.Repeat("    ", b.indent))
	b.sb.WriteString(line)
	b.sb.WriteByte('\n')
}

// BlankLine appends an empty line.
func (b *Builder) BlankLine() {
	b.sb.WriteByte('\n')
}

// Indent increases the indentation level.
func (b *Builder) Indent() {
	b.indent++
}

// Unindent decreases the indentation level.
func (b *Builder) Unindent() {
	if b.indent > 0 {
		b.indent--
	}
}

// OpenScope writes "{" and indents.
func (b *Builder) OpenScope() {
	b.WriteLine("{")
	b.Indent()
}

// CloseScope unindents and writes "}".
func (b *Builder) CloseScope() {
	b.Unindent()
	b.WriteLine("}")
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.sb.String()
}
