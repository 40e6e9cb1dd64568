package hashing

// RepetitionTable counts how many times each position key has occurred
// in one game. It supports removal so a game can take moves back.
type RepetitionTable struct {
	counts map[uint64]int
}

// NewRepetitionTable creates an empty table.
func NewRepetitionTable() *RepetitionTable {
	return &RepetitionTable{counts: make(map[uint64]int)}
}

// Add records one more occurrence of key and returns the new count.
func (r *RepetitionTable) Add(key uint64) int {
	r.counts[key]++
	return r.counts[key]
}

// Remove takes back one occurrence of key.
func (r *RepetitionTable) Remove(key uint64) {
	switch n := r.counts[key]; {
	case n <= 1:
		delete(r.counts, key)
	default:
		r.counts[key] = n - 1
	}
}

// Count returns the number of recorded occurrences of key.
func (r *RepetitionTable) Count(key uint64) int {
	return r.counts[key]
}

// Reset clears the table.
func (r *RepetitionTable) Reset() {
	r.counts = make(map[uint64]int)
}
