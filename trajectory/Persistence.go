package trajectory

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"io"

	"gorgonia.org/tensor"
)

// dataset is the serialized form of one Field: every element stacked
// into a single tensor whose leading dimension indexes elements. Data
// is nil for an empty Field.
type dataset struct {
	Name         string
	PaddingValue float64
	Count        int
	Data         *tensor.Dense
}

// Save writes the Buffer to w as a compressed container of named
// numeric datasets, one per field. The written form round-trips
// losslessly through Load.
func (b *Buffer) Save(w io.Writer) error {
	datasets := make([]dataset, 0, len(b.names))
	for _, name := range b.names {
		field := b.fields[name]
		ds := dataset{
			Name:         name,
			PaddingValue: field.paddingValue,
			Count:        field.Len(),
		}
		if field.Len() > 0 {
			ds.Data = stack(field.elements)
		}
		datasets = append(datasets, ds)
	}

	compressed := gzip.NewWriter(w)
	if err := gob.NewEncoder(compressed).Encode(datasets); err != nil {
		compressed.Close()
		return fmt.Errorf("save: could not encode buffer: %v", err)
	}
	if err := compressed.Close(); err != nil {
		return fmt.Errorf("save: could not flush compressed data: %v", err)
	}
	return nil
}

// Load reconstructs the Buffer's fields from a container previously
// written by Save. Each dataset's leading dimension becomes the
// element index of the corresponding field, replacing that field's
// contents. Fields not named in the container are untouched.
func (b *Buffer) Load(r io.Reader) error {
	compressed, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("load: could not read compressed data: %v", err)
	}
	defer compressed.Close()

	var datasets []dataset
	if err := gob.NewDecoder(compressed).Decode(&datasets); err != nil {
		return fmt.Errorf("load: could not decode buffer: %v", err)
	}

	for _, ds := range datasets {
		field := b.Field(ds.Name)
		field.paddingValue = ds.PaddingValue
		field.elements = unstack(ds.Data, ds.Count)
	}
	return nil
}

// stack copies the elements into one tensor whose leading dimension is
// the element index. All elements must share one shape.
func stack(elements []*tensor.Dense) *tensor.Dense {
	elementShape := elements[0].Shape()
	size := elementShape.TotalSize()

	backing := make([]float64, len(elements)*size)
	for i, element := range elements {
		copy(backing[i*size:(i+1)*size], element.Data().([]float64))
	}

	shape := append([]int{len(elements)}, elementShape...)
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(backing))
}

// unstack splits a stacked tensor back into count elements along its
// leading dimension
func unstack(data *tensor.Dense, count int) []*tensor.Dense {
	if count == 0 || data == nil {
		return nil
	}

	elementShape := append([]int{}, data.Shape()[1:]...)
	size := tensor.Shape(elementShape).TotalSize()
	backing := data.Data().([]float64)

	elements := make([]*tensor.Dense, count)
	for i := range elements {
		chunk := make([]float64, size)
		copy(chunk, backing[i*size:(i+1)*size])
		elements[i] = tensor.New(tensor.WithShape(elementShape...),
			tensor.WithBacking(chunk))
	}
	return elements
}
