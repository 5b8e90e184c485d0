package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/snarled/layer"
)

// JSONGeometrySource implements GeometrySource by reading a small JSON
// sidecar file, used by the CLI's --format json mode (spec §6.4's "ships
// one concrete source ... for tests and for users who pre-extract geometry
// from their own OASIS/GDSII toolchain"). The real layout-file readers stay
// external collaborators per §1.
//
// File shape:
//
//	{
//	  "polys": {"1/0": [[[0,0],[10,0],[10,10],[0,10]]], ...},
//	  "labels": {"1/0": [{"x": 5, "y": 5, "text": "A"}], ...}
//	}
type JSONGeometrySource struct {
	Path string
}

type jsonDoc struct {
	Polys  map[string][][][2]float64 `json:"polys"`
	Labels map[string][]jsonLabel    `json:"labels"`
}

type jsonLabel struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}

func (s JSONGeometrySource) load() (*jsonDoc, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("trace: reading %s: %w", s.Path, err)
	}
	var doc jsonDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("trace: parsing %s: %w", s.Path, err)
	}
	return &doc, nil
}

// Polys implements GeometrySource.
func (s JSONGeometrySource) Polys() (map[layer.ID][][][2]float64, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[layer.ID][][][2]float64, len(doc.Polys))
	for key, polys := range doc.Polys {
		l, err := parseLayerKey(key)
		if err != nil {
			return nil, err
		}
		out[l] = polys
	}
	return out, nil
}

// Labels implements GeometrySource.
func (s JSONGeometrySource) Labels() (map[layer.ID][]Label, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make(map[layer.ID][]Label, len(doc.Labels))
	for key, labels := range doc.Labels {
		l, err := parseLayerKey(key)
		if err != nil {
			return nil, err
		}
		converted := make([]Label, len(labels))
		for i, lb := range labels {
			converted[i] = Label{X: lb.X, Y: lb.Y, Text: lb.Text}
		}
		out[l] = converted
	}
	return out, nil
}

// parseLayerKey parses a "layer/datatype" JSON object key into a layer.ID.
func parseLayerKey(key string) (layer.ID, error) {
	a, b, ok := strings.Cut(key, "/")
	if !ok {
		return layer.ID{}, fmt.Errorf("trace: invalid layer key %q, want \"layer/datatype\"", key)
	}
	l, err := strconv.Atoi(a)
	if err != nil {
		return layer.ID{}, fmt.Errorf("trace: invalid layer key %q: %w", key, err)
	}
	d, err := strconv.Atoi(b)
	if err != nil {
		return layer.ID{}, fmt.Errorf("trace: invalid layer key %q: %w", key, err)
	}
	return layer.New(int32(l), int32(d)), nil
}
