package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/example/vintry/internal/models"
	"github.com/example/vintry/internal/ports/primary"
)

type stubMoveService struct {
	resp *primary.ExecuteMovesResponse
	err  error
}

func (s *stubMoveService) ExecuteMoves(context.Context, string, []models.Move) (*primary.ExecuteMovesResponse, error) {
	return s.resp, s.err
}

func TestMoveAdapterRendersResults(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewMoveAdapter(&stubMoveService{
		resp: &primary.ExecuteMovesResponse{
			Moved: 2,
			Results: []models.MoveResult{
				{WineID: "w1", From: "R1C1", To: "R2C1"},
				{WineID: "w2", From: "", To: "R2C2"},
			},
			Validation: models.MoveValidation{Valid: true},
		},
	}, &buf)

	if err := adapter.Execute(context.Background(), "default", nil); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "w1: R1C1 → R2C1") {
		t.Errorf("missing move line:\n%s", out)
	}
	if !strings.Contains(out, "w2: (unplaced) → R2C2") {
		t.Errorf("missing unplaced rendering:\n%s", out)
	}
	if !strings.Contains(out, "Moved 2 bottles") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestMoveAdapterRejectedBatch(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewMoveAdapter(&stubMoveService{
		resp: &primary.ExecuteMovesResponse{
			Validation: models.MoveValidation{
				Valid: false,
				Conflicts: []models.MoveConflict{
					{WineID: "w1", Reason: "target slot R9C9 does not exist"},
				},
			},
		},
	}, &buf)

	err := adapter.Execute(context.Background(), "default", nil)
	if err == nil {
		t.Fatal("expected error for rejected batch")
	}
	if !strings.Contains(err.Error(), "1 move conflicts") {
		t.Errorf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Batch rejected; nothing was moved") {
		t.Errorf("missing rejection line:\n%s", out)
	}
	if !strings.Contains(out, "w1: target slot R9C9 does not exist") {
		t.Errorf("missing conflict detail:\n%s", out)
	}
}
