// Package output writes dt results to stdout and diagnostics to stderr.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cli/go-gh/v2/pkg/jsonpretty"
	"github.com/cli/go-gh/v2/pkg/tableprinter"
	"github.com/mgutz/ansi"
	"gopkg.in/yaml.v3"
)

// Format selects how records and tables are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Field is one named value of a record.
type Field struct {
	Name  string
	Value string
}

// Output handles all output formatting with optional color support.
type Output struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	isTTY  bool
	width  int
	color  bool

	cyan   func(string) string
	green  func(string) string
	bold   func(string) string
	yellow func(string) string
	red    func(string) string
}

// New creates a new Output. isTTY and width describe stdout and control
// table layout; colorize enables ANSI colors.
func New(stdout, stderr io.Writer, colorize, isTTY bool, width int) *Output {
	color := func(name string) func(string) string {
		if colorize {
			return ansi.ColorFunc(name)
		}
		return ansi.ColorFunc("")
	}

	return &Output{
		stdout: stdout,
		stderr: stderr,
		isTTY:  isTTY,
		width:  width,
		color:  colorize,
		cyan:   color("cyan"),
		green:  color("green+b"),
		bold:   color("white+b"),
		yellow: color("yellow"),
		red:    color("red+b"),
	}
}

// Value writes a single result line, such as a canonical datetime.
func (o *Output) Value(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.stdout, o.cyan(s))
}

// Plain writes a result line without color.
func (o *Output) Plain(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintln(o.stdout, s)
}

// Warningf writes a formatted warning message to stderr.
func (o *Output) Warningf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.yellow("Warning: ")+format+"\n", args...)
}

// Errorf writes a formatted error message to stderr.
func (o *Output) Errorf(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, o.red("Error: ")+format+"\n", args...)
}

// Infof writes a formatted informational message to stderr.
func (o *Output) Infof(format string, args ...any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.stderr, format+"\n", args...)
}

// Record writes fields as a name/value table, a JSON object, or a YAML
// mapping. Field order is kept in every format.
func (o *Output) Record(format Format, fields []Field) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch format {
	case FormatJSON:
		return o.writeJSON(recordJSON(fields))
	case FormatYAML:
		return o.writeYAML(recordYAML(fields))
	}

	tp := tableprinter.New(o.stdout, o.isTTY, o.width)
	for _, f := range fields {
		tp.AddField(f.Name, tableprinter.WithColor(o.bold))
		tp.AddField(f.Value, tableprinter.WithColor(o.cyan))
		tp.EndRow()
	}
	return tp.Render()
}

// Table writes rows under headers. JSON and YAML render a list of objects
// keyed by the headers.
func (o *Output) Table(format Format, headers []string, rows [][]string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch format {
	case FormatJSON, FormatYAML:
		objects := make([][]Field, len(rows))
		for i, row := range rows {
			for j, h := range headers {
				objects[i] = append(objects[i], Field{Name: strings.ToLower(h), Value: row[j]})
			}
		}
		if format == FormatJSON {
			parts := make([]string, len(objects))
			for i, obj := range objects {
				parts[i] = recordJSON(obj)
			}
			return o.writeJSON("[" + strings.Join(parts, ",") + "]")
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, obj := range objects {
			seq.Content = append(seq.Content, recordYAML(obj))
		}
		return o.writeYAML(seq)
	}

	tp := tableprinter.New(o.stdout, o.isTTY, o.width)
	tp.AddHeader(headers, tableprinter.WithColor(o.bold))
	for _, row := range rows {
		for j, cell := range row {
			if j == 0 {
				tp.AddField(cell, tableprinter.WithColor(o.green))
			} else {
				tp.AddField(cell)
			}
		}
		tp.EndRow()
	}
	return tp.Render()
}

func (o *Output) writeJSON(doc string) error {
	return jsonpretty.Format(o.stdout, strings.NewReader(doc), "  ", o.color)
}

func (o *Output) writeYAML(node *yaml.Node) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := o.stdout.Write(buf.Bytes())
	return err
}

// recordJSON renders fields as a JSON object in field order.
func recordJSON(fields []Field) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		name, _ := json.Marshal(f.Name)
		value, _ := json.Marshal(f.Value)
		b.Write(name)
		b.WriteByte(':')
		b.Write(value)
	}
	b.WriteByte('}')
	return b.String()
}

func recordYAML(fields []Field) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range fields {
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	return m
}
