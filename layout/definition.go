package layout

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/fieldkit/codec"
)

// Definition is the on-disk form of a layout.
//
//	name: mbr-partition
//	offset: 446
//	fields:
//	  - {name: status, type: u8}
//	  - {name: chs_first, type: bytes, len: 3}
//	  - {name: type, type: u8}
//	  - {name: label, type: bytes, len: 8, text: cp1252}
type Definition struct {
	Name string `yaml:"name"`
	// Offset is where the record starts in the source. The CLI uses it as
	// the default for --offset.
	Offset int64             `yaml:"offset"`
	Fields []FieldDefinition `yaml:"fields"`
}

// FieldDefinition is the on-disk form of a Field.
type FieldDefinition struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Len  int    `yaml:"len,omitempty"`
	Text string `yaml:"text,omitempty"`
}

// Build validates the definition and returns its Layout.
func (d *Definition) Build() (*Layout, error) {
	fields := make([]Field, 0, len(d.Fields))
	for i, fd := range d.Fields {
		kind, err := codec.ParseKind(fd.Type)
		if err != nil {
			return nil, layoutErr("field %d (%q): %v", i, fd.Name, err)
		}
		text, err := codec.ParseTextEncoding(fd.Text)
		if err != nil {
			return nil, layoutErr("field %d (%q): %v", i, fd.Name, err)
		}
		fields = append(fields, Field{Name: fd.Name, Kind: kind, Len: fd.Len, Text: text})
	}
	l, err := New(fields...)
	if err != nil {
		return nil, err
	}
	l.name = d.Name
	return l, nil
}

// DefinitionOf returns the Definition that rebuilds l with its record
// starting at offset.
func DefinitionOf(l *Layout, offset int64) *Definition {
	d := &Definition{Name: l.name, Offset: offset, Fields: make([]FieldDefinition, len(l.fields))}
	for i, f := range l.fields {
		fd := FieldDefinition{Name: f.Name, Type: f.Kind.String(), Text: f.Text.String()}
		if f.Kind == codec.Bytes {
			fd.Len = f.Len
		}
		d.Fields[i] = fd
	}
	return d
}

// ParseDefinition decodes a YAML layout definition without building it.
func ParseDefinition(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse layout definition: %w", err)
	}
	if d.Offset < 0 {
		return nil, layoutErr("negative record offset %d", d.Offset)
	}
	return &d, nil
}

// ParseYAML decodes and builds a YAML layout definition.
func ParseYAML(data []byte) (*Layout, error) {
	d, err := ParseDefinition(data)
	if err != nil {
		return nil, err
	}
	return d.Build()
}

// LoadDefinition reads a YAML layout definition from path.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseDefinition(data)
}

// LoadFile reads and builds a YAML layout definition from path.
func LoadFile(path string) (*Layout, error) {
	d, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}
	return d.Build()
}

// Save writes d to path as YAML.
func (d *Definition) Save(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal layout definition: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write layout file: %w", err)
	}
	return nil
}

// ParseSpec builds a layout from the compact comma-separated form
//
//	name:kind[:len[:text]]
//
// for example "magic:u32,version:u16,label:bytes:8:cp1252".
func ParseSpec(spec string) (*Layout, error) {
	var fields []Field
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := parseFieldSpec(part)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return New(fields...)
}

func parseFieldSpec(s string) (Field, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return Field{}, layoutErr("field spec %q: want name:kind[:len[:text]]", s)
	}
	kind, err := codec.ParseKind(parts[1])
	if err != nil {
		return Field{}, layoutErr("field spec %q: %v", s, err)
	}
	f := Field{Name: strings.TrimSpace(parts[0]), Kind: kind}
	if len(parts) >= 3 {
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return Field{}, layoutErr("field spec %q: bad length: %v", s, err)
		}
		f.Len = n
	}
	if len(parts) == 4 {
		enc, err := codec.ParseTextEncoding(parts[3])
		if err != nil {
			return Field{}, layoutErr("field spec %q: %v", s, err)
		}
		f.Text = enc
	}
	return f, nil
}
