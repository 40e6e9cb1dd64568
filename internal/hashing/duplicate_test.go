package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/chessbot-go/internal/chess"
)

func TestDuplicateDetector(t *testing.T) {
	detector := NewDuplicateDetector()
	board := initialBoard()
	moves := []chess.Move{{From: chess.Sq(6, 0), To: chess.Sq(5, 2)}}

	if detector.CheckAndAdd(board, moves) {
		t.Error("First game was marked as duplicate")
	}
	if !detector.CheckAndAdd(board, moves) {
		t.Error("Duplicate game was not detected")
	}
	if detector.DuplicateCount() != 1 {
		t.Errorf("Expected 1 duplicate, got %d", detector.DuplicateCount())
	}
}

func TestDuplicateDetectorDifferentMoves(t *testing.T) {
	detector := NewDuplicateDetector()
	board := initialBoard()

	// Same final position reached by different move orders is not a duplicate.
	movesA := []chess.Move{{From: chess.Sq(6, 0), To: chess.Sq(5, 2)}, {From: chess.Sq(5, 2), To: chess.Sq(6, 0)}}
	movesB := []chess.Move{{From: chess.Sq(1, 0), To: chess.Sq(2, 2)}, {From: chess.Sq(2, 2), To: chess.Sq(1, 0)}}

	if detector.CheckAndAdd(board, movesA) {
		t.Error("Game A was incorrectly marked as duplicate")
	}
	if detector.CheckAndAdd(board, movesB) {
		t.Error("Game B was incorrectly marked as duplicate")
	}
	if detector.UniqueCount() != 2 {
		t.Errorf("Expected 2 unique games, got %d", detector.UniqueCount())
	}
}

func TestDuplicateDetectorReset(t *testing.T) {
	detector := NewDuplicateDetector()
	board := initialBoard()

	detector.CheckAndAdd(board, nil)
	detector.CheckAndAdd(board, nil)
	detector.Reset()

	if detector.DuplicateCount() != 0 {
		t.Errorf("Expected 0 duplicates after reset, got %d", detector.DuplicateCount())
	}
	if detector.UniqueCount() != 0 {
		t.Errorf("Expected 0 unique games after reset, got %d", detector.UniqueCount())
	}
}

func TestThreadSafeDuplicateDetector_Concurrent(t *testing.T) {
	detector := NewThreadSafeDuplicateDetector()
	board := initialBoard()

	const numGames = 100
	const numWorkers = 10
	gamesPerWorker := numGames / numWorkers

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < gamesPerWorker; j++ {
				detector.CheckAndAdd(board.Copy(), nil)
			}
		}()
	}
	wg.Wait()

	if detector.DuplicateCount() != numGames-1 {
		t.Errorf("Expected %d duplicates, got %d", numGames-1, detector.DuplicateCount())
	}
	if detector.UniqueCount() != 1 {
		t.Errorf("Expected 1 unique, got %d", detector.UniqueCount())
	}
}

func TestHashMoveSequence(t *testing.T) {
	a := []chess.Move{{From: chess.Sq(4, 1), To: chess.Sq(4, 3)}}
	b := []chess.Move{{From: chess.Sq(3, 1), To: chess.Sq(3, 3)}}
	if HashMoveSequence(a) == HashMoveSequence(b) {
		t.Error("different move sequences should hash differently")
	}
	if HashMoveSequence(nil) != 0 {
		t.Error("empty sequence should hash to 0")
	}
}
