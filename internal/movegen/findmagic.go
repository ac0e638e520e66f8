package movegen

import (
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/hailam/chesscore/internal/board"
)

// maxMagicTries bounds the search for one square.
const maxMagicTries = 100_000_000

// FindMagic searches for a multiplier that hashes every blocker subset of
// the slider's mask on sq without a destructive collision. Sparse random
// candidates converge fastest.
func FindMagic(sq board.Square, s Slider, rng *rand.Rand) (uint64, error) {
	mask := s.Mask(sq)
	k := mask.PopCount()

	var blockers, attacks []board.Bitboard
	ForEachSubset(mask, func(occ board.Bitboard) {
		blockers = append(blockers, occ)
		attacks = append(attacks, s.Attacks(sq, occ))
	})

	used := make([]board.Bitboard, 1<<k)
	epoch := make([]int, 1<<k)

	for try := 1; try <= maxMagicTries; try++ {
		magic := rng.Uint64() & rng.Uint64() & rng.Uint64()

		// Reject multipliers that leave the top byte of the product sparse.
		if bits.OnesCount64((uint64(mask)*magic)>>56) < 6 {
			continue
		}

		ok := true
		for i, occ := range blockers {
			idx := uint64(occ.WrappingMul(board.Bitboard(magic))) >> (64 - k)
			if epoch[idx] != try {
				epoch[idx] = try
				used[idx] = attacks[i]
			} else if used[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, nil
		}
	}
	return 0, fmt.Errorf("no %s magic found for %s after %d tries", s, sq, maxMagicTries)
}
