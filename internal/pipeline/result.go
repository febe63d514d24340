package pipeline

import (
	"time"

	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

// Generation outcomes recorded in GenerationResult.Status.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// ResultSaver persists the outcome of each generation.
// This allows the pipeline to record history without depending on storage.
type ResultSaver interface {
	SaveGeneration(result GenerationResult) error
}

// GenerationResult contains one generation's outcome for persistence.
type GenerationResult struct {
	Request     GenerateRequest
	RoomsPlaced int
	TreeEdges   int
	LoopEdges   int
	Status      string
	Error       string
	Duration    time.Duration
}

func succeeded(req GenerateRequest, l *dungeon.Layout, d time.Duration) GenerationResult {
	return GenerationResult{
		Request:     req,
		RoomsPlaced: len(l.Rooms),
		TreeEdges:   len(l.Corridors.Tree),
		LoopEdges:   len(l.Corridors.Loops),
		Status:      StatusSucceeded,
		Duration:    d,
	}
}

func failed(req GenerateRequest, err error, d time.Duration) GenerationResult {
	return GenerationResult{
		Request:  req,
		Status:   StatusFailed,
		Error:    err.Error(),
		Duration: d,
	}
}
