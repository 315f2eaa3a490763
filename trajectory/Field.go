package trajectory

import (
	"fmt"

	"gorgonia.org/tensor"
)

// Field is the ordered sequence of values recorded for one named
// attribute of an agent's trajectory, e.g. observations, actions, or
// action masks. Elements are appended in time order, and every element
// of one Field must have the same shape.
//
// A Field owns a padding policy: a scalar multiplier applied to the
// last real element to synthesize missing leading elements when a
// batch request needs more elements than exist. The padding value is
// recorded at append time and is last-write-wins.
type Field struct {
	elements     []*tensor.Dense
	paddingValue float64
}

// NewField returns a new, empty Field with a padding value of 0
func NewField() *Field {
	return &Field{}
}

// Append adds a single element to the end of the Field and resets the
// Field's padding value to 0
func (f *Field) Append(element *tensor.Dense) {
	f.AppendWithPadding(element, 0)
}

// AppendWithPadding adds a single element to the end of the Field and
// records paddingValue as the Field's padding policy. This lets
// callers pad differently per field, e.g. action masks padded with 1
// and observations padded with 0.
func (f *Field) AppendWithPadding(element *tensor.Dense,
	paddingValue float64) {
	f.elements = append(f.elements, element)
	f.paddingValue = paddingValue
}

// Set replaces the Field's contents with the given elements
func (f *Field) Set(elements []*tensor.Dense) {
	f.elements = make([]*tensor.Dense, len(elements))
	copy(f.elements, elements)
}

// Extend appends each of the given elements to the Field in order
func (f *Field) Extend(elements []*tensor.Dense) {
	f.elements = append(f.elements, elements...)
}

// Reset empties the Field. The padding value is untouched.
func (f *Field) Reset() {
	f.elements = nil
}

// Len returns the number of elements in the Field
func (f *Field) Len() int {
	return len(f.elements)
}

// PaddingValue returns the Field's current padding value
func (f *Field) PaddingValue() float64 {
	return f.paddingValue
}

// Get returns the element at index i
func (f *Field) Get(i int) *tensor.Dense {
	return f.elements[i]
}

// Elements returns the Field's elements in time order. The returned
// slice is freshly allocated, but the elements themselves are not
// copied.
func (f *Field) Elements() []*tensor.Dense {
	elements := make([]*tensor.Dense, len(f.elements))
	copy(elements, f.elements)
	return elements
}

// String returns the string representation of the Field: its length
// and the shape of its elements
func (f *Field) String() string {
	if len(f.elements) == 0 {
		return "(0)"
	}
	return fmt.Sprintf("(%d, %v)", len(f.elements), f.elements[0].Shape())
}

// GetBatch retrieves the last batchSize sequences of length
// trainingLength from the Field. A batchSize < 1 retrieves the maximum
// number of sequences available; a trainingLength < 1 is treated as 1.
//
// If sequential is true, the sequences do not overlap, and the whole
// Field is left-padded to a multiple of trainingLength when there are
// too few real elements to fill the request: [a,b,c,d,e] with
// trainingLength = 2 gives [0,a, b,c, d,e]. Padding elements are the
// last real element scaled by the Field's padding value, and are never
// aliased to stored elements.
//
// If sequential is false, the sequences are overlapping sliding
// windows with step 1, oldest window first: [a,b,c,d,e] with
// trainingLength = 2 and batchSize = 4 gives [a,b, b,c, c,d, d,e].
//
// GetBatch returns an error satisfying IsOutOfRangeBatch when the
// requested batchSize exceeds the number of sequences available. The
// Field is never modified.
func (f *Field) GetBatch(batchSize, trainingLength int,
	sequential bool) ([]*tensor.Dense, error) {
	if trainingLength < 1 {
		trainingLength = 1
	}
	n := len(f.elements)

	if sequential {
		// leftover is the number of real elements in the first, possibly
		// padded, sequence
		leftover := n % trainingLength
		maxBatch := n / trainingLength
		if leftover != 0 {
			maxBatch++
		}

		if batchSize < 1 {
			batchSize = maxBatch
		}
		if batchSize > maxBatch {
			return nil, &BufferError{Op: "batch", Err: errOutOfRangeBatch}
		}

		if batchSize*trainingLength > n {
			// Not enough real elements: left-pad the entire Field to a
			// multiple of trainingLength
			padding, err := f.padding()
			if err != nil {
				return nil, fmt.Errorf("batch: could not pad: %v", err)
			}

			numPadding := trainingLength - leftover
			batch := make([]*tensor.Dense, 0, numPadding+n)
			for i := 0; i < numPadding; i++ {
				batch = append(batch, padding.Clone().(*tensor.Dense))
			}
			return append(batch, f.elements...), nil
		}

		// A contiguous suffix of the most recent elements
		batch := make([]*tensor.Dense, batchSize*trainingLength)
		copy(batch, f.elements[n-batchSize*trainingLength:])
		return batch, nil
	}

	// Overlapping sliding windows
	if batchSize < 1 {
		batchSize = n - trainingLength + 1
	} else if n-trainingLength+1 < batchSize {
		return nil, &BufferError{Op: "batch", Err: errOutOfRangeBatch}
	}

	batch := make([]*tensor.Dense, 0)
	for end := n - batchSize + 1; end <= n; end++ {
		batch = append(batch, f.elements[end-trainingLength:end]...)
	}
	return batch, nil
}

// padding synthesizes a single padding element: the last real element
// scaled by the Field's padding value
func (f *Field) padding() (*tensor.Dense, error) {
	last := f.elements[len(f.elements)-1]
	return last.MulScalar(f.paddingValue, true)
}
