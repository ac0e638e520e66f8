package movegen

import "github.com/hailam/chesscore/internal/board"

// GenerateMoves appends the pseudo-legal moves of the side to move to ml,
// filtered by mt. Moves may still leave the mover's king in check;
// board.MakeMove rejects those.
func (g *Generator) GenerateMoves(b *board.Board, ml *board.MoveList, mt board.MoveType) {
	us := b.SideToMove()
	occupied := b.Occupancy(board.Both)
	enemies := b.Occupancy(us.Other())

	var targets board.Bitboard
	switch mt {
	case board.Captures:
		targets = enemies
	case board.Quiets:
		targets = ^occupied
	default:
		targets = ^b.Occupancy(us)
	}

	g.generatePawnMoves(b, ml, mt, us)

	// Knight moves
	knights := b.Pieces(board.NewPiece(board.Knight, us))
	for knights != 0 {
		from := knights.PopLSB()
		g.addPieceMoves(b, ml, from, g.KnightAttacks(from)&targets)
	}

	// Bishop moves
	bishops := b.Pieces(board.NewPiece(board.Bishop, us))
	for bishops != 0 {
		from := bishops.PopLSB()
		g.addPieceMoves(b, ml, from, g.BishopAttacks(from, occupied)&targets)
	}

	// Rook moves
	rooks := b.Pieces(board.NewPiece(board.Rook, us))
	for rooks != 0 {
		from := rooks.PopLSB()
		g.addPieceMoves(b, ml, from, g.RookAttacks(from, occupied)&targets)
	}

	// Queen moves
	queens := b.Pieces(board.NewPiece(board.Queen, us))
	for queens != 0 {
		from := queens.PopLSB()
		g.addPieceMoves(b, ml, from, g.QueenAttacks(from, occupied)&targets)
	}

	// King moves
	kings := b.Pieces(board.NewPiece(board.King, us))
	for kings != 0 {
		from := kings.PopLSB()
		g.addPieceMoves(b, ml, from, g.KingAttacks(from)&targets)
	}

	if mt.WantsQuiets() {
		g.generateCastlingMoves(b, ml, us)
	}
}

// addPieceMoves adds one move per target square. The captured piece is read
// from the board.
func (g *Generator) addPieceMoves(b *board.Board, ml *board.MoveList, from board.Square, targets board.Bitboard) {
	piece := b.PieceAt(from)
	for targets != 0 {
		to := targets.PopLSB()
		ml.Add(board.NewMove(from, to, piece, b.PieceAt(to), board.NoPiece, false, false, false))
	}
}

// generatePawnMoves generates pushes, double pushes, captures, en passant
// and promotions for every pawn of us.
func (g *Generator) generatePawnMoves(b *board.Board, ml *board.MoveList, mt board.MoveType, us board.Color) {
	pawn := board.NewPiece(board.Pawn, us)
	pawns := b.Pieces(pawn)
	empty := ^b.Occupancy(board.Both)
	enemies := b.Occupancy(us.Other())
	ep := b.EnPassant()

	homeRank, promotionRank := board.Rank2, board.Rank8
	if us == board.Black {
		homeRank, promotionRank = board.Rank7, board.Rank1
	}

	for pawns != 0 {
		from := pawns.PopLSB()
		fromBB := from.BB()

		if mt.WantsQuiets() {
			push := fromBB.North()
			if us == board.Black {
				push = fromBB.South()
			}
			if push&empty != 0 {
				to := push.LSB()
				if push&promotionRank != 0 {
					addPromotions(ml, from, to, pawn, board.NoPiece)
				} else {
					ml.Add(board.NewMove(from, to, pawn, board.NoPiece, board.NoPiece, false, false, false))

					// A double push needs the single push square free too.
					if fromBB&homeRank != 0 {
						double := push.North()
						if us == board.Black {
							double = push.South()
						}
						if double&empty != 0 {
							ml.Add(board.NewMove(from, double.LSB(), pawn, board.NoPiece, board.NoPiece, false, false, true))
						}
					}
				}
			}
		}

		if !mt.WantsCaptures() {
			continue
		}

		attacks := g.PawnAttacks(from, us)
		captures := attacks & enemies
		for captures != 0 {
			to := captures.PopLSB()
			captured := b.PieceAt(to)
			if to.BB()&promotionRank != 0 {
				addPromotions(ml, from, to, pawn, captured)
			} else {
				ml.Add(board.NewMove(from, to, pawn, captured, board.NoPiece, false, false, false))
			}
		}

		if ep != board.NoSquare && attacks&ep.BB() != 0 {
			ml.Add(board.NewMove(from, ep, pawn, board.NewPiece(board.Pawn, us.Other()), board.NoPiece, true, false, false))
		}
	}
}

// addPromotions adds all four promotion moves.
func addPromotions(ml *board.MoveList, from, to board.Square, pawn, captured board.Piece) {
	for _, promo := range promotionPieces {
		ml.Add(board.NewMove(from, to, pawn, captured, promo.ToColor(pawn.Color()), false, false, false))
	}
}

var promotionPieces = [4]board.Piece{board.WhiteQueen, board.WhiteRook, board.WhiteBishop, board.WhiteKnight}

// castle describes one castling option for one side.
type castle struct {
	right    board.CastlingRights
	king     board.Piece
	from, to board.Square
	rook     board.Square
	empty    board.Bitboard
	safe     [3]board.Square
}

var castles = [2][2]castle{
	{
		{board.WhiteKingSideCastle, board.WhiteKing, board.E1, board.G1, board.H1,
			board.F1.BB() | board.G1.BB(), [3]board.Square{board.E1, board.F1, board.G1}},
		{board.WhiteQueenSideCastle, board.WhiteKing, board.E1, board.C1, board.A1,
			board.B1.BB() | board.C1.BB() | board.D1.BB(), [3]board.Square{board.E1, board.D1, board.C1}},
	},
	{
		{board.BlackKingSideCastle, board.BlackKing, board.E8, board.G8, board.H8,
			board.F8.BB() | board.G8.BB(), [3]board.Square{board.E8, board.F8, board.G8}},
		{board.BlackQueenSideCastle, board.BlackKing, board.E8, board.C8, board.A8,
			board.B8.BB() | board.C8.BB() | board.D8.BB(), [3]board.Square{board.E8, board.D8, board.C8}},
	},
}

// generateCastlingMoves adds castling when the right is held, the squares
// between king and rook are empty and no square the king crosses, start and
// end included, is attacked.
func (g *Generator) generateCastlingMoves(b *board.Board, ml *board.MoveList, us board.Color) {
	them := us.Other()
	occupied := b.Occupancy(board.Both)

	for _, c := range castles[us.Index()] {
		if !b.Castling().Has(c.right) || b.PieceAt(c.from) != c.king {
			continue
		}
		if b.PieceAt(c.rook) != board.NewPiece(board.Rook, us) {
			continue
		}
		if occupied&c.empty != 0 {
			continue
		}
		if g.IsSquareAttacked(c.safe[0], them, b) ||
			g.IsSquareAttacked(c.safe[1], them, b) ||
			g.IsSquareAttacked(c.safe[2], them, b) {
			continue
		}
		ml.Add(board.NewMove(c.from, c.to, c.king, board.NoPiece, board.NoPiece, false, true, false))
	}
}
