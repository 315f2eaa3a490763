package trajectory

import (
	"bytes"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBufferSaveLoad(t *testing.T) {
	b := NewBuffer()
	for i := 0; i < 4; i++ {
		b.Field("observations").Append(FromMatrix(mat.NewDense(2, 3,
			[]float64{
				float64(i), float64(i + 1), float64(i + 2),
				float64(i + 3), float64(i + 4), float64(i + 5),
			})))
		b.Field("actions").Append(elem(float64(i), float64(-i)))
		b.Field("masks").AppendWithPadding(elem(1), 1)
	}
	b.Field("rewards") // accessed but never written

	var container bytes.Buffer
	if err := b.Save(&container); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	loaded := NewBuffer()
	if err := loaded.Load(&container); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	names := loaded.FieldNames()
	wantNames := []string{"observations", "actions", "masks", "rewards"}
	if len(names) != len(wantNames) {
		t.Fatalf("unexpected field names: %v", names)
	}
	for i, name := range wantNames {
		if names[i] != name {
			t.Errorf("field name %v \n\twant(%v)\n\thave(%v)", i, name,
				names[i])
		}
	}

	for _, name := range wantNames {
		src, dst := b.Field(name), loaded.Field(name)
		if src.Len() != dst.Len() {
			t.Fatalf("field %v length \n\twant(%v)\n\thave(%v)", name,
				src.Len(), dst.Len())
		}
		for i := 0; i < src.Len(); i++ {
			if !elemsEqual(src.Get(i), dst.Get(i)) {
				t.Errorf("field %v element %v differs after round trip: "+
					"\n\twant(%v)\n\thave(%v)", name, i, src.Get(i),
					dst.Get(i))
			}
		}
		if src.PaddingValue() != dst.PaddingValue() {
			t.Errorf("field %v padding value \n\twant(%v)\n\thave(%v)",
				name, src.PaddingValue(), dst.PaddingValue())
		}
	}
}

func TestBufferLoadReplacesFieldContents(t *testing.T) {
	b := NewBuffer()
	b.Field("a").Append(elem(1))
	b.Field("a").Append(elem(2))

	var container bytes.Buffer
	if err := b.Save(&container); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	// Loading replaces the named field's contents, but leaves fields
	// absent from the container untouched
	loaded := NewBuffer()
	loaded.Field("a").Append(elem(99))
	loaded.Field("other").Append(elem(7))
	if err := loaded.Load(&container); err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if loaded.Field("a").Len() != 2 || first(loaded.Field("a").Get(0)) != 1 {
		t.Errorf("load did not replace field contents: %v", loaded.Field("a"))
	}
	if loaded.Field("other").Len() != 1 {
		t.Errorf("load touched an unrelated field: %v", loaded.Field("other"))
	}
}

func TestBufferLoadBadData(t *testing.T) {
	loaded := NewBuffer()
	if err := loaded.Load(bytes.NewReader([]byte("not a container"))); err == nil {
		t.Error("expected an error from a malformed container")
	}
}
