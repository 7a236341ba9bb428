package server

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// resolveSeed keeps an explicit seed and draws one from crypto/rand for 0.
func resolveSeed(seed int64) (int64, error) {
	if seed != 0 {
		return seed, nil
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed = int64(binary.LittleEndian.Uint64(b[:]))
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
