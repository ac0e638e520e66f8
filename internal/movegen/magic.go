package movegen

import (
	"fmt"

	"github.com/hailam/chesscore/internal/board"
)

// Magic bitboard implementation for sliding piece attacks.
// Uses pre-computed magic numbers for fast lookup.

const (
	bishopTableSize = 5248
	rookTableSize   = 102400
)

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   board.Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64         // Magic multiplier
	Shift  uint8          // Bits to shift right
	Offset uint32         // Index into attack table
}

// Index maps a blocker set to its slot in the shared attack table.
func (m *Magic) Index(occupied board.Bitboard) uint32 {
	hash := (occupied & m.Mask).WrappingMul(board.Bitboard(m.Magic))
	return m.Offset + uint32(uint64(hash)>>m.Shift)
}

// Slider selects the sliding piece a mask or table belongs to.
type Slider uint8

const (
	BishopSlider Slider = iota
	RookSlider
)

func (s Slider) String() string {
	if s == BishopSlider {
		return "bishop"
	}
	return "rook"
}

// Mask returns the relevant occupancy mask of the slider on sq.
func (s Slider) Mask(sq board.Square) board.Bitboard {
	if s == BishopSlider {
		return BishopMask(sq)
	}
	return RookMask(sq)
}

// Attacks ray-casts the slider's attacks from sq against occupied.
func (s Slider) Attacks(sq board.Square, occupied board.Bitboard) board.Bitboard {
	if s == BishopSlider {
		return BishopAttacksSlow(sq, occupied)
	}
	return RookAttacksSlow(sq, occupied)
}

// buildMagicTable fills table for one slider and returns the per-square
// entries. Two blocker sets that hash to one slot must agree on the attack
// set; anything else means a bad constant and panics.
func buildMagicTable(s Slider, numbers *[64]uint64, table []board.Bitboard) [64]Magic {
	var magics [64]Magic
	filled := make([]bool, len(table))
	var offset uint32

	for sq := board.A8; sq <= board.H1; sq++ {
		mask := s.Mask(sq)
		bits := mask.PopCount()

		magics[sq] = Magic{
			Mask:   mask,
			Magic:  numbers[sq],
			Shift:  uint8(64 - bits),
			Offset: offset,
		}

		m := &magics[sq]
		ForEachSubset(mask, func(occ board.Bitboard) {
			idx := m.Index(occ)
			attacks := s.Attacks(sq, occ)
			if filled[idx] && table[idx] != attacks {
				panic(fmt.Sprintf("movegen: %s magic collision on %s (magic %#016x)", s, sq, m.Magic))
			}
			table[idx] = attacks
			filled[idx] = true
		})
		offset += uint32(1) << bits
	}

	if int(offset) != len(table) {
		panic(fmt.Sprintf("movegen: %s table needs %d entries, have %d", s, offset, len(table)))
	}
	return magics
}

// ForEachSubset calls fn for every subset of mask, starting with the empty
// set, using the Carry-Rippler enumeration.
func ForEachSubset(mask board.Bitboard, fn func(board.Bitboard)) {
	var n board.Bitboard
	for {
		fn(n)
		n = n.WrappingSub(mask) & mask
		if n == 0 {
			return
		}
	}
}

// BishopMask returns the relevant occupancy mask for bishop at square.
// Excludes edge squares since they don't affect the result.
func BishopMask(sq board.Square) board.Bitboard {
	return BishopAttacksSlow(sq, 0) &^ (board.Rank1 | board.Rank8 | board.FileA | board.FileH)
}

// RookMask returns the relevant occupancy mask for rook at square.
func RookMask(sq board.Square) board.Bitboard {
	file := sq.File()
	rank := sq.Rank()

	var mask board.Bitboard

	// Horizontal (exclude edges unless rook is on edge)
	for f := 1; f < 7; f++ {
		if f != file {
			mask |= board.NewSquare(f, rank).BB()
		}
	}

	// Vertical (exclude edges unless rook is on edge)
	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= board.NewSquare(file, r).BB()
		}
	}

	return mask
}

// ray walks from sq in steps of (df, dr), including the first blocker.
func ray(sq board.Square, occupied board.Bitboard, df, dr int) board.Bitboard {
	var attacks board.Bitboard
	for f, r := sq.File()+df, sq.Rank()+dr; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+df, r+dr {
		s := board.NewSquare(f, r).BB()
		attacks |= s
		if occupied&s != 0 {
			break
		}
	}
	return attacks
}

// BishopAttacksSlow computes bishop attacks by ray casting (used during initialization).
func BishopAttacksSlow(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return ray(sq, occupied, 1, 1) | ray(sq, occupied, -1, 1) |
		ray(sq, occupied, 1, -1) | ray(sq, occupied, -1, -1)
}

// RookAttacksSlow computes rook attacks by ray casting (used during initialization).
func RookAttacksSlow(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return ray(sq, occupied, 0, 1) | ray(sq, occupied, 0, -1) |
		ray(sq, occupied, 1, 0) | ray(sq, occupied, -1, 0)
}
