package hilbert_test

import (
	"fmt"
	"math/big"

	"github.com/matzehuels/hilbertmaze/pkg/hilbert"
)

func ExamplePoint() {
	for i := int64(0); i < 4; i++ {
		fmt.Println(hilbert.Point(big.NewInt(i), 1, 2))
	}
	// Output:
	// [0 0]
	// [0 1]
	// [1 1]
	// [1 0]
}
