package lib

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GetRandomInt returns a uniformly distributed int in [min, max).
func GetRandomInt(min, max int) (int, error) {
	if max-min <= 0 {
		return 0, fmt.Errorf("tried to get random int between [0, %v)", max-min)
	}

	bg := big.NewInt(int64(max - min))
	n, err := rand.Int(rand.Reader, bg)
	if err != nil {
		return 0, err
	}

	return int(n.Int64()) + min, nil
}
