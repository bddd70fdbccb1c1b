package tetris

import "math/rand/v2"

// Rand is the minimal randomness source the engine needs: a uniform
// integer in [0, n). It is satisfied by *rand.Rand from math/rand/v2.
// Collaborators MUST supply a seeded instance for deterministic replay
// under test; the engine never reaches for a package-level generator.
type Rand interface {
	IntN(n int) int
}

// NewSeededRand returns the module's default Rand source, a
// math/rand/v2 PCG generator seeded deterministically from the two
// given words. Two instances built from the same seed produce the same
// bag-shuffle sequence.
func NewSeededRand(seed1, seed2 uint64) Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// shuffle permutes kinds in place using the Fisher-Yates algorithm
// driven by r.
func shuffle(r Rand, kinds []PieceKind) {
	for i := len(kinds) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}
}

// shuffledBag returns a freshly shuffled permutation of all seven piece
// kinds.
func shuffledBag(r Rand) []PieceKind {
	bag := []PieceKind{PieceI, PieceO, PieceT, PieceL, PieceJ, PieceS, PieceZ}
	shuffle(r, bag)
	return bag
}
