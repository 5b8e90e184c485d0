// Package layer defines the layer/datatype identifier shared by every stage
// of the connectivity pipeline.
package layer

import "fmt"

// ID identifies a mask layer by its (layer, datatype) pair, the same
// addressing scheme used by layout file formats such as GDSII and OASIS.
// ID is comparable and hashable as a whole, so it can be used directly as a
// map key.
type ID struct {
	Layer    int32
	Datatype int32
}

// New constructs an ID from a layer/datatype pair.
func New(l, d int32) ID {
	return ID{Layer: l, Datatype: d}
}

// String renders the conventional "layer/datatype" textual form.
func (id ID) String() string {
	return fmt.Sprintf("%d/%d", id.Layer, id.Datatype)
}
