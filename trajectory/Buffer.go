// Package trajectory implements per-agent trajectory buffers for
// reinforcement learning: columnar stores of time-ordered experience
// records (observations, actions, rewards, masks, and auxiliary
// outputs) collected during rollouts and later consumed as training
// batches.
package trajectory

import (
	"fmt"
	"strings"

	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"

	"sfneuman.com/gobuffer/utils/intutils"
)

// Buffer holds the Fields of a single agent's trajectory, keyed by
// field name. Fields are created lazily on first access and grow
// independently, but the batching, shuffling, and transfer operations
// act identically across every field so that one index position stays
// aligned across fields - a single experience.
//
// A Buffer is not internally synchronized. It assumes single-threaded
// ownership, or external locking around entire read/modify sequences.
type Buffer struct {
	// LastRolloutInfo and LastActionOutputs hold opaque values
	// associated with the most recent rollout step. They are not part
	// of the field mapping and are cleared by Reset.
	LastRolloutInfo   interface{}
	LastActionOutputs interface{}

	names  []string
	fields map[string]*Field
}

// NewBuffer returns a new Buffer with no fields
func NewBuffer() *Buffer {
	return &Buffer{fields: make(map[string]*Field)}
}

// Field returns the Field stored under name, creating an empty Field
// on first access. Reading a never-written name is not an error: it
// yields an empty Field.
func (b *Buffer) Field(name string) *Field {
	field, ok := b.fields[name]
	if !ok {
		field = NewField()
		b.fields[name] = field
		b.names = append(b.names, name)
	}
	return field
}

// FieldNames returns the names of the Buffer's fields in the order the
// fields were first accessed
func (b *Buffer) FieldNames() []string {
	names := make([]string, len(b.names))
	copy(names, b.names)
	return names
}

// NumExperiences returns the number of experiences in the Buffer: the
// length of any one field, or 0 if no fields exist. Fields populated
// asynchronously may disagree on length until aligned; this reports
// the length of the first field.
func (b *Buffer) NumExperiences() int {
	if len(b.names) == 0 {
		return 0
	}
	return b.fields[b.names[0]].Len()
}

// Reset empties every field and clears the rollout metadata slots.
// Field entries themselves are not removed.
func (b *Buffer) Reset() {
	for _, field := range b.fields {
		field.Reset()
	}
	b.LastRolloutInfo = nil
	b.LastActionOutputs = nil
}

// CheckLength returns true iff fewer than two names are given, or
// every named field exists and all named fields have equal length.
// CheckLength is a predicate, not an error path: an absent field or a
// length mismatch yields false.
func (b *Buffer) CheckLength(names ...string) bool {
	if len(names) < 2 {
		return true
	}

	length := -1
	for _, name := range names {
		field, ok := b.fields[name]
		if !ok {
			return false
		}
		if length >= 0 && length != field.Len() {
			return false
		}
		length = field.Len()
	}
	return true
}

// Shuffle reorders the named fields (all fields if none are given) in
// contiguous chunks of sequenceLength elements, drawing one random
// permutation from rng and applying it to every field so that each
// experience stays aligned across fields. Elements beyond the last
// complete chunk are dropped.
//
// Shuffle returns an error satisfying IsLengthMismatch, before any
// field is mutated, if the named fields are not all of equal length.
func (b *Buffer) Shuffle(rng *rand.Rand, sequenceLength int,
	names ...string) error {
	if len(names) == 0 {
		names = b.names
	}
	if !b.CheckLength(names...) {
		return &BufferError{Op: "shuffle", Err: errLengthMismatch}
	}
	if len(names) == 0 {
		return nil
	}
	if sequenceLength < 1 {
		sequenceLength = 1
	}

	chunks := b.Field(names[0]).Len() / sequenceLength
	perm := rng.Perm(chunks)

	for _, name := range names {
		field := b.Field(name)
		shuffled := make([]*tensor.Dense, 0, chunks*sequenceLength)
		for _, i := range perm {
			chunk := field.elements[i*sequenceLength : (i+1)*sequenceLength]
			shuffled = append(shuffled, chunk...)
		}
		field.elements = shuffled
	}
	return nil
}

// MakeMiniBatch returns a new, independently owned Buffer whose every
// field is the [start, end) slice of the corresponding source field.
// Out-of-range indices are clamped. Each mini-batch field inherits the
// source field's padding value.
func (b *Buffer) MakeMiniBatch(start, end int) *Buffer {
	miniBatch := NewBuffer()
	for _, name := range b.names {
		field := b.fields[name]
		low := intutils.Clamp(start, 0, field.Len())
		high := intutils.Clamp(end, low, field.Len())

		target := miniBatch.Field(name)
		target.Set(field.elements[low:high])
		target.paddingValue = field.paddingValue
	}
	return miniBatch
}

// SampleMiniBatch returns a new, independently owned Buffer of
// batchSize/sequenceLength sequences sampled uniformly at random, with
// replacement, from the Buffer. Each sampled sequence starts at an
// index that is a multiple of sequenceLength, and the same start
// indices are applied to every field, preserving cross-field
// alignment. If fewer than one complete sequence is available, the
// returned Buffer's fields are empty.
func (b *Buffer) SampleMiniBatch(rng *rand.Rand, batchSize,
	sequenceLength int) *Buffer {
	if sequenceLength < 1 {
		sequenceLength = 1
	}

	miniBatch := NewBuffer()
	numSequences := batchSize / sequenceLength
	available := b.NumExperiences() / sequenceLength
	if numSequences < 1 || available < 1 {
		for _, name := range b.names {
			target := miniBatch.Field(name)
			target.paddingValue = b.fields[name].paddingValue
		}
		return miniBatch
	}

	starts := make([]int, numSequences)
	for i := range starts {
		starts[i] = rng.Intn(available) * sequenceLength
	}

	for _, name := range b.names {
		field := b.fields[name]
		sampled := make([]*tensor.Dense, 0, numSequences*sequenceLength)
		for _, start := range starts {
			sampled = append(sampled,
				field.elements[start:start+sequenceLength]...)
		}

		target := miniBatch.Field(name)
		target.Set(sampled)
		target.paddingValue = field.paddingValue
	}
	return miniBatch
}

// Truncate bounds the Buffer to at most maxLength experiences, first
// rounding maxLength down to a multiple of sequenceLength. Every field
// keeps its most recent elements; the oldest data is dropped. Truncate
// is a no-op if the Buffer is already within bound.
func (b *Buffer) Truncate(maxLength, sequenceLength int) {
	if sequenceLength >= 1 {
		maxLength -= maxLength % sequenceLength
	}

	current := b.NumExperiences()
	if current <= maxLength {
		return
	}

	for _, name := range b.names {
		field := b.fields[name]
		low := intutils.Clamp(current-maxLength, 0, field.Len())
		kept := make([]*tensor.Dense, field.Len()-low)
		copy(kept, field.elements[low:])
		field.elements = kept
	}
}

// ResequenceAndAppend extracts a sequential, padded batch from each
// named field (all fields if none are given) with GetBatch and extends
// the corresponding field of target with the result. This is how short
// per-agent episode buffers are merged, padded for sequence models,
// into one global training buffer. A batchSize or trainingLength < 1
// defaults as in GetBatch.
//
// ResequenceAndAppend returns an error satisfying IsLengthMismatch if
// the named fields are not all of equal length, or an error satisfying
// IsOutOfRangeBatch if the batch request exceeds the available data.
// On error, target is left untouched.
func (b *Buffer) ResequenceAndAppend(target *Buffer, batchSize,
	trainingLength int, names ...string) error {
	if len(names) == 0 {
		names = b.names
	}
	if !b.CheckLength(names...) {
		return &BufferError{Op: "resequence", Err: errLengthMismatch}
	}

	batches := make([][]*tensor.Dense, len(names))
	for i, name := range names {
		batch, err := b.Field(name).GetBatch(batchSize, trainingLength, true)
		if err != nil {
			return err
		}
		batches[i] = batch
	}

	for i, name := range names {
		target.Field(name).Extend(batches[i])
	}
	return nil
}

// String returns the string representation of the Buffer
func (b *Buffer) String() string {
	descriptions := make([]string, len(b.names))
	for i, name := range b.names {
		descriptions[i] = fmt.Sprintf("'%v' : %v", name, b.fields[name])
	}
	return strings.Join(descriptions, ", ")
}
