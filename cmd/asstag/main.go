/*
Command asstag reads ASS dialogue lines and prints them in canonical form, as a
syntax tree, or as tag statistics.

	asstag fmt '{\c&h0000ff}Red'      →  {\c&H0000FF&}Red
	asstag parse '{\an8}Top'          →  YAML dump of the line's AST
	asstag stats < dialogue.txt       →  number of tags per kind

Lines are taken from the command line or, if none are given, from stdin.
*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/asstag"
	"github.com/npillmayer/asstag/ast"
	"github.com/npillmayer/asstag/compose"
	"github.com/npillmayer/asstag/parser"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"gopkg.in/yaml.v3"
)

var cli struct {
	Debug    bool `help:"Trace at debug level."`
	MaxDepth int  `help:"Maximum nesting depth of grammar rules." default:"512"`

	Fmt   fmtCmd   `cmd:"" help:"Print lines in canonical form."`
	Parse parseCmd `cmd:"" help:"Dump the syntax tree of lines as YAML."`
	Stats statsCmd `cmd:"" help:"Count tags by kind."`
}

type lineArgs struct {
	Lines []string `arg:"" optional:"" help:"Dialogue lines. Read from stdin if missing."`
}

// globals are bound to the Run methods of commands.
type globals struct {
	opts []parser.Option
	out  io.Writer
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("asstag"),
		kong.Description("Parse and compose override tags of ASS dialogue lines."),
		kong.UsageOnError())
	gtrace.CoreTracer = gologadapter.New()
	level := tracing.LevelInfo
	if cli.Debug {
		level = tracing.LevelDebug
	}
	gtrace.CoreTracer.SetTraceLevel(level)
	tracing.Select("asstag.parser").SetTraceLevel(level)
	tracing.Select("asstag.peg").SetTraceLevel(level)
	asstag.CT().Debugf("max depth of rule nesting is %d", cli.MaxDepth)
	g := &globals{
		opts: []parser.Option{parser.MaxDepth(cli.MaxDepth)},
		out:  os.Stdout,
	}
	err := ctx.Run(g)
	ctx.FatalIfErrorf(err)
}

// eachLine calls f for every input line. Parse errors are traced and counted.
func (g *globals) eachLine(args lineArgs, f func(*ast.Line) error) error {
	failed := 0
	handle := func(no int, text string) error {
		line, err := parser.Parse(text, g.opts...)
		if err != nil {
			failed++
			asstag.CT().Errorf("line %d: %v", no, err)
			return nil
		}
		return f(line)
	}
	if len(args.Lines) > 0 {
		for i, text := range args.Lines {
			if err := handle(i+1, text); err != nil {
				return err
			}
		}
	} else {
		sc := bufio.NewScanner(os.Stdin)
		for no := 1; sc.Scan(); no++ {
			if err := handle(no, sc.Text()); err != nil {
				return err
			}
		}
		if err := sc.Err(); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d line(s) could not be parsed", failed)
	}
	return nil
}

// --- Commands --------------------------------------------------------------

type fmtCmd struct {
	lineArgs
}

func (c *fmtCmd) Run(g *globals) error {
	return g.eachLine(c.lineArgs, func(line *ast.Line) error {
		_, err := fmt.Fprintln(g.out, compose.Compose(line))
		return err
	})
}

type parseCmd struct {
	lineArgs
}

func (c *parseCmd) Run(g *globals) error {
	enc := yaml.NewEncoder(g.out)
	enc.SetIndent(2)
	defer enc.Close()
	return g.eachLine(c.lineArgs, func(line *ast.Line) error {
		return enc.Encode(dump(line))
	})
}

type statsCmd struct {
	lineArgs
}

func (c *statsCmd) Run(g *globals) error {
	counts := treemap.NewWithStringComparator()
	lines := 0
	err := g.eachLine(c.lineArgs, func(line *ast.Line) error {
		lines++
		for _, tag := range ast.Tags(line) {
			n, found := counts.Get(tag.Kind())
			if !found {
				n = 0
			}
			counts.Put(tag.Kind(), n.(int)+1)
		}
		return nil
	})
	fmt.Fprintf(g.out, "%d line(s)\n", lines)
	it := counts.Iterator()
	for it.Next() {
		fmt.Fprintf(g.out, "%-20s %6d\n", it.Key(), it.Value())
	}
	return err
}

// --- YAML dump -------------------------------------------------------------

// dumper collects a YAML-friendly representation of a line. Every node
// becomes a mapping with its kind in "type"; nested tags are collected in
// "tags".
type dumper struct {
	chunks []interface{}
	stack  []map[string]interface{}
}

func dump(line *ast.Line) []interface{} {
	d := &dumper{chunks: []interface{}{}}
	ast.Walk(line, d)
	return d.chunks
}

func (d *dumper) Enter(n ast.Node) {
	m := fields(n)
	m["type"] = n.Kind()
	if _, container := n.(*ast.TagList); container {
		m["tags"] = []interface{}{}
	} else if _, container := n.(*ast.Animation); container {
		m["tags"] = []interface{}{}
	}
	if len(d.stack) == 0 {
		d.chunks = append(d.chunks, m)
	} else {
		parent := d.stack[len(d.stack)-1]
		parent["tags"] = append(parent["tags"].([]interface{}), m)
	}
	d.stack = append(d.stack, m)
}

func (d *dumper) Exit(ast.Node) {
	d.stack = d.stack[:len(d.stack)-1]
}

// fields returns the exported fields of a node, except nested tags.
func fields(n ast.Node) map[string]interface{} {
	m := make(map[string]interface{})
	var v interface{} = n
	switch t := n.(type) {
	case *ast.TagList:
		return m
	case *ast.Animation:
		v = ast.Animation{Start: t.Start, End: t.End, Accel: t.Accel}
	}
	data, err := yaml.Marshal(v)
	if err == nil {
		err = yaml.Unmarshal(data, &m)
	}
	if err != nil {
		tracing.Select("asstag.parser").Errorf("cannot dump %s: %v", n.Kind(), err)
	}
	delete(m, "tags")
	return m
}
