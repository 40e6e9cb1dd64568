package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrInvalidSquare", ErrInvalidSquare, ErrInvalidSquare},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrUnrecognizedMove", ErrUnrecognizedMove, ErrUnrecognizedMove},
		{"ErrStrategemContract", ErrStrategemContract, ErrStrategemContract},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrSubmissionFailed", ErrSubmissionFailed, ErrSubmissionFailed},
		{"ErrOutOfTurn", ErrOutOfTurn, ErrOutOfTurn},
		{"ErrGameOver", ErrGameOver, ErrGameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrIllegalMove, ErrUnrecognizedMove) {
		t.Error("ErrIllegalMove should not match ErrUnrecognizedMove")
	}
	if errors.Is(ErrStrategemContract, ErrIllegalMove) {
		t.Error("ErrStrategemContract should not match ErrIllegalMove")
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to parse position: %w", ErrInvalidFEN)

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Errorf("errors.Is(wrapped, ErrInvalidFEN) = false, want true")
	}
}

// TestGameError_Error verifies the error message format
func TestGameError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GameError
		contains []string
	}{
		{
			name: "full context",
			err: &GameError{
				Err:      ErrStrategemContract,
				GameNum:  5,
				Ply:      12,
				MoveText: "e2e5",
				Side:     "White",
			},
			contains: []string{"game 5", "ply 12", "e2e5", "white", "strategem contract violation"},
		},
		{
			name: "minimal context",
			err: &GameError{
				Err: ErrUnrecognizedMove,
				Ply: 1,
			},
			contains: []string{"ply 1", "unrecognized move"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("GameError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

func TestGameError_NoContext(t *testing.T) {
	err := &GameError{Err: ErrGameOver}
	if got := err.Error(); got != ErrGameOver.Error() {
		t.Errorf("GameError.Error() = %q, want %q", got, ErrGameOver.Error())
	}
}

// TestGameError_Unwrap verifies that GameError properly implements Unwrap
func TestGameError_Unwrap(t *testing.T) {
	gameErr := &GameError{
		Err: ErrIllegalMove,
		Ply: 3,
	}

	unwrapped := errors.Unwrap(gameErr)
	if !errors.Is(unwrapped, ErrIllegalMove) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrIllegalMove)
	}

	if !errors.Is(gameErr, ErrIllegalMove) {
		t.Error("errors.Is(gameErr, ErrIllegalMove) = false, want true")
	}
}

// TestGameError_As verifies that errors.As works with GameError
func TestGameError_As(t *testing.T) {
	gameErr := &GameError{
		Err:      ErrStrategemContract,
		GameNum:  3,
		Ply:      24,
		MoveText: "a1a1",
	}

	wrapped := fmt.Errorf("arena failed: %w", gameErr)

	var extractedErr *GameError
	if !As(wrapped, &extractedErr) {
		t.Fatal("As() could not extract GameError")
	}

	if extractedErr.GameNum != 3 {
		t.Errorf("extractedErr.GameNum = %d, want 3", extractedErr.GameNum)
	}
	if extractedErr.MoveText != "a1a1" {
		t.Errorf("extractedErr.MoveText = %q, want %q", extractedErr.MoveText, "a1a1")
	}
	if !Is(wrapped, ErrStrategemContract) {
		t.Error("Is(wrapped, ErrStrategemContract) = false, want true")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrInvalidFEN,
		Input:    "8/8/8 w - - 0 1",
		Field:    "placement",
		Expected: "8 ranks",
		Got:      "3",
	}

	msg := err.Error()

	for _, want := range []string{"8/8/8", "placement", "expected 8 ranks, got 3", "invalid fen"} {
		if !containsIgnoreCase(msg, want) {
			t.Errorf("ParseError.Error() = %q, should contain %q", msg, want)
		}
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{
		Err:   ErrUnrecognizedMove,
		Input: "e9e4",
	}

	if !errors.Is(parseErr, ErrUnrecognizedMove) {
		t.Error("errors.Is(parseErr, ErrUnrecognizedMove) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "parsing FEN string")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "parsing FEN string") {
		t.Errorf("Wrap should include context, got %q", msg)
	}

	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "move %d in game %d", 15, 3)

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "move 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
