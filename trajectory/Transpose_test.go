package trajectory

import (
	"testing"

	"gorgonia.org/tensor"
)

func TestTransposeObs(t *testing.T) {
	// Three agents, two observation channels
	obs := [][]*tensor.Dense{
		{elem(0), elem(1)},
		{elem(10), elem(11)},
		{elem(20), elem(21)},
	}

	batch := TransposeObs(obs)
	if len(batch) != 2 {
		t.Fatalf("unexpected channel count \n\twant(2)\n\thave(%v)",
			len(batch))
	}

	for c := 0; c < 2; c++ {
		if len(batch[c]) != 3 {
			t.Fatalf("unexpected batch size for channel %v: %v", c,
				len(batch[c]))
		}
		for a := 0; a < 3; a++ {
			// Element identity is preserved, not just value equality
			if batch[c][a] != obs[a][c] {
				t.Errorf("batch[%v][%v] is not obs[%v][%v]", c, a, a, c)
			}
		}
	}

	if TransposeObs(nil) != nil {
		t.Error("empty batch should transpose to nil")
	}
}

func TestTransposeObsRagged(t *testing.T) {
	obs := [][]*tensor.Dense{
		{elem(0), elem(1), elem(2)},
		{elem(10)},
	}

	// A ragged batch truncates to the shortest observation
	batch := TransposeObs(obs)
	if len(batch) != 1 {
		t.Errorf("unexpected channel count \n\twant(1)\n\thave(%v)",
			len(batch))
	}
}

func TestTransposeNestedObs(t *testing.T) {
	// Two timesteps, three auxiliary observations, two channels
	obs := make([][][]*tensor.Dense, 2)
	for i := range obs {
		obs[i] = make([][]*tensor.Dense, 3)
		for j := range obs[i] {
			obs[i][j] = []*tensor.Dense{
				elem(float64(100*i + 10*j)),
				elem(float64(100*i + 10*j + 1)),
			}
		}
	}

	batch := TransposeNestedObs(obs)
	if len(batch) != 3 {
		t.Fatalf("unexpected outer length \n\twant(3)\n\thave(%v)",
			len(batch))
	}

	for j := 0; j < 3; j++ {
		if len(batch[j]) != 2 {
			t.Fatalf("unexpected channel count at %v: %v", j, len(batch[j]))
		}
		for k := 0; k < 2; k++ {
			for i := 0; i < 2; i++ {
				if batch[j][k][i] != obs[i][j][k] {
					t.Errorf("batch[%v][%v][%v] is not obs[%v][%v][%v]",
						j, k, i, i, j, k)
				}
			}
		}
	}
}
