package hashing

import "github.com/lgbarn/chessbot-go/internal/chess"

// DuplicateDetector tracks finished games and reports repeats. Two games
// are duplicates when they end in the same position after the same moves.
type DuplicateDetector struct {
	// hashTable maps final-position keys to the games that ended there
	hashTable map[uint64][]GameSignature
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of half-moves in the game
	MoveCount int
	// MoveHash is a hash of the move sequence
	MoveHash uint64
	// WeakHash is a fast placement hash for quick comparison
	WeakHash uint64
}

// NewDuplicateDetector creates a new duplicate detector.
func NewDuplicateDetector() *DuplicateDetector {
	return &DuplicateDetector{
		hashTable: make(map[uint64][]GameSignature),
	}
}

// Signature builds the signature of a game from its final board and moves.
func Signature(board *chess.Board, moves []chess.Move) GameSignature {
	return GameSignature{
		Hash:      GenerateZobristHash(board),
		MoveCount: len(moves),
		MoveHash:  HashMoveSequence(moves),
		WeakHash:  WeakHash(board),
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate.
func (d *DuplicateDetector) CheckAndAdd(board *chess.Board, moves []chess.Move) bool {
	if board == nil {
		return false
	}

	sig := Signature(board, moves)

	for _, existing := range d.hashTable[sig.Hash] {
		if existing == sig {
			d.duplicateCount++
			return true
		}
	}

	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	count := 0
	for _, sigs := range d.hashTable {
		count += len(sigs)
	}
	return count
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.duplicateCount = 0
}

// HashMoveSequence creates a hash from the coordinate text of the moves.
func HashMoveSequence(moves []chess.Move) uint64 {
	var hash uint64
	multiplier := uint64(31)

	for _, move := range moves {
		for _, c := range move.String() {
			hash = hash*multiplier + uint64(c)
		}
		hash = hash*multiplier + ' '
	}

	return hash
}
