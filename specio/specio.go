// Package specio parses the text-file formats the CLI accepts: layer maps,
// connectivity specs, and label remaps (spec §6.3). These are external
// collaborators per §1 ("the layer-map / connectivity-spec / remap
// text-file parsers" are out of the core's scope) but are implemented here
// so the repository is a runnable program end to end.
package specio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/snarled/layer"
)

// ParseError reports a malformed line in one of the text formats this
// package reads (spec §7 kind 2: SpecParse, "fatal, with line number").
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("specio: %s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadLayerMap reads a klayout-compatible layer map file: one
// "layer/datatype:name" per line, blank lines ignored, with the characters
// "*-()" forbidden anywhere in a line (spec §6.3).
func ReadLayerMap(path string) (map[string]layer.ID, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]layer.ID)
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := forbid(line, "*-()"); err != nil {
			return nil, &ParseError{Path: path, Line: n + 1, Err: err}
		}

		idx := strings.LastIndexByte(line, ':')
		if idx < 0 {
			return nil, &ParseError{Path: path, Line: n + 1, Err: fmt.Errorf("missing ':' in layer map line %q", line)}
		}
		layerPart := strings.TrimSpace(line[:idx])
		name := strings.TrimSpace(line[idx+1:])

		id, err := parseLayerNum(layerPart)
		if err != nil {
			return nil, &ParseError{Path: path, Line: n + 1, Err: err}
		}
		out[name] = id
	}
	return out, nil
}

// LayerRef is a connectivity/remap field: either a bare layer name
// (resolved against a layer map) or an inline "layer/datatype" token.
type LayerRef struct {
	Name    string
	Numeric layer.ID
	IsNamed bool
}

// Resolve turns a LayerRef into a concrete layer.ID, consulting layerMap
// for named references.
func (r LayerRef) Resolve(layerMap map[string]layer.ID) (layer.ID, error) {
	if !r.IsNamed {
		return r.Numeric, nil
	}
	id, ok := layerMap[r.Name]
	if !ok {
		return layer.ID{}, fmt.Errorf("specio: unknown layer name %q", r.Name)
	}
	return id, nil
}

// Triple is one connectivity-spec entry (spec §6.1, §6.3): top and bottom
// layer references, and an optional via layer reference. Via.IsNamed is
// meaningless when ViaPresent is false.
type Triple struct {
	Top, Bot   LayerRef
	Via        LayerRef
	ViaPresent bool
}

// ReadConnectivity reads a connectivity-spec file: one line per triple,
// 2 or 3 comma-separated fields, each a layer name or inline
// "layer/datatype" token. Two-field lines denote direct contact (spec
// §6.3: "Two-field lines denote direct contact (no via)").
func ReadConnectivity(path string) ([]Triple, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	var out []Triple
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 && len(fields) != 3 {
			return nil, &ParseError{Path: path, Line: n + 1, Err: fmt.Errorf("connectivity line must have 2 or 3 fields, got %d", len(fields))}
		}

		refs := make([]LayerRef, len(fields))
		for i, f := range fields {
			ref, err := parseFieldRef(f)
			if err != nil {
				return nil, &ParseError{Path: path, Line: n + 1, Err: err}
			}
			refs[i] = ref
		}

		if len(refs) == 2 {
			out = append(out, Triple{Top: refs[0], Bot: refs[1], ViaPresent: false})
		} else {
			out = append(out, Triple{Top: refs[0], Via: refs[1], ViaPresent: true, Bot: refs[2]})
		}
	}
	return out, nil
}

// ReadRemap reads an "old : new" per line remap file (spec §6.3), used by
// the CLI for the labels remap (-p).
// Each side is a layer name or "layer/datatype" token.
func ReadRemap(path string) (map[string]string, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for n, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			return nil, &ParseError{Path: path, Line: n + 1, Err: fmt.Errorf("remap line must contain exactly one ':'")}
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return out, nil
}

func parseFieldRef(field string) (LayerRef, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return LayerRef{}, fmt.Errorf("empty layer field")
	}
	if strings.ContainsRune(field, '/') {
		id, err := parseLayerNum(field)
		if err != nil {
			return LayerRef{}, err
		}
		return LayerRef{Numeric: id}, nil
	}
	return LayerRef{Name: field, IsNamed: true}, nil
}

// parseLayerNum parses a "123/45"-style layer/datatype token.
func parseLayerNum(s string) (layer.ID, error) {
	a, b, ok := strings.Cut(s, "/")
	if !ok {
		return layer.ID{}, fmt.Errorf("invalid layer/datatype token %q", s)
	}
	l, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return layer.ID{}, fmt.Errorf("invalid layer number in %q: %w", s, err)
	}
	d, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return layer.ID{}, fmt.Errorf("invalid datatype number in %q: %w", s, err)
	}
	return layer.New(int32(l), int32(d)), nil
}

func forbid(line, chars string) error {
	for _, c := range chars {
		if strings.ContainsRune(line, c) {
			return fmt.Errorf("forbidden character %q in line %q", c, line)
		}
	}
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("specio: opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("specio: reading %s: %w", path, err)
	}
	return lines, nil
}
