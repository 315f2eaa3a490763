package trajectory

import (
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// FromVector copies a gonum vector into a rank-1 float64 tensor
// suitable for appending to a Field
func FromVector(v mat.Vector) *tensor.Dense {
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return tensor.New(tensor.WithShape(v.Len()), tensor.WithBacking(data))
}

// FromMatrix copies a gonum matrix into a rank-2 float64 tensor
// suitable for appending to a Field
func FromMatrix(m mat.Matrix) *tensor.Dense {
	rows, cols := m.Dims()
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = m.At(i, j)
		}
	}
	return tensor.New(tensor.WithShape(rows, cols), tensor.WithBacking(data))
}
