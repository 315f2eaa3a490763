package trajectory

import "gorgonia.org/tensor"

// TransposeObs converts a batch of per-agent observations, where each
// observation is itself a list of tensors (one per observation
// channel), into a per-channel batch: outer index agent, inner index
// channel becomes outer index channel, inner index agent. The tensors
// themselves are not copied. A ragged batch is truncated to the
// shortest observation.
func TransposeObs(obs [][]*tensor.Dense) [][]*tensor.Dense {
	if len(obs) == 0 {
		return nil
	}

	channels := len(obs[0])
	for _, o := range obs {
		if len(o) < channels {
			channels = len(o)
		}
	}

	batch := make([][]*tensor.Dense, channels)
	for c := 0; c < channels; c++ {
		batch[c] = make([]*tensor.Dense, len(obs))
		for a, o := range obs {
			batch[c][a] = o[c]
		}
	}
	return batch
}

// TransposeNestedObs applies TransposeObs across an additional outer
// dimension, e.g. a variable number of auxiliary observations per
// timestep: batch[j][k][i] = obs[i][j][k]. As with TransposeObs, the
// tensors themselves are not copied and ragged input is truncated to
// the shortest row.
func TransposeNestedObs(obs [][][]*tensor.Dense) [][][]*tensor.Dense {
	if len(obs) == 0 {
		return nil
	}

	inner := len(obs[0])
	for _, o := range obs {
		if len(o) < inner {
			inner = len(o)
		}
	}

	batch := make([][][]*tensor.Dense, inner)
	for i := 0; i < inner; i++ {
		row := make([][]*tensor.Dense, len(obs))
		for t, o := range obs {
			row[t] = o[i]
		}
		batch[i] = TransposeObs(row)
	}
	return batch
}
