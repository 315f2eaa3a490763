package main

import (
	"bytes"
	"fmt"
	"log"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"sfneuman.com/gobuffer/trajectory"
)

func main() {
	var seed uint64 = 192382
	rng := rand.New(rand.NewSource(seed))

	// Collect a short rollout: one aligned experience per step
	episode := trajectory.NewBuffer()
	for step := 0; step < 12; step++ {
		obs := mat.NewVecDense(2, []float64{float64(step), float64(step) / 2})
		action := mat.NewVecDense(1, []float64{float64(step % 3)})
		mask := mat.NewVecDense(1, []float64{1})

		episode.Field("observations").Append(trajectory.FromVector(obs))
		episode.Field("actions").Append(trajectory.FromVector(action))

		// Action masks are padded with 1 so that padded steps stay valid
		episode.Field("masks").AppendWithPadding(trajectory.FromVector(mask), 1)
	}
	fmt.Println("collected:", episode)

	// Merge the episode, padded to sequences of 5, into a training buffer
	training := trajectory.NewBuffer()
	if err := episode.ResequenceAndAppend(training, 0, 5); err != nil {
		log.Fatal(err)
	}
	fmt.Println("training buffer:", training)

	// Shuffle sequences, then draw a random mini-batch
	if err := training.Shuffle(rng, 5); err != nil {
		log.Fatal(err)
	}
	batch := training.SampleMiniBatch(rng, 10, 5)
	fmt.Println("sampled batch:", batch)

	// Round-trip the training buffer through the storage contract
	var container bytes.Buffer
	if err := training.Save(&container); err != nil {
		log.Fatal(err)
	}

	restored := trajectory.NewBuffer()
	if err := restored.Load(&container); err != nil {
		log.Fatal(err)
	}
	fmt.Println("restored:", restored)
}
