package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dungeon/internal/storage"
)

type fakeHistory struct {
	gens  []storage.Generation
	err   error
	calls int
}

func (f *fakeHistory) RecentGenerations(limit int) ([]storage.Generation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if len(f.gens) > limit {
		return f.gens[:limit], nil
	}
	return f.gens, nil
}

func sampleHistory() *fakeHistory {
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	return &fakeHistory{gens: []storage.Generation{
		{ID: 2, Seed: 99, Rooms: 12, RoomsPlaced: 12, Radius: 32, TreeEdges: 11, LoopEdges: 2,
			Status: "succeeded", Duration: 3 * time.Millisecond, CreatedAt: now},
		{ID: 1, Seed: 42, Rooms: 50, Radius: 5, Status: "failed", Error: "placement", CreatedAt: now},
	}}
}

func TestHistoryRows(t *testing.T) {
	rows := historyRows(sampleHistory().gens)

	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	want := []string{"2", "99", "12/12", "32", "11+2", "succeeded", "3ms", "Mar 01 12:30"}
	for i, cell := range want {
		if rows[0][i] != cell {
			t.Errorf("row 0 column %d = %q, want %q", i, rows[0][i], cell)
		}
	}
	if rows[1][2] != "0/50" {
		t.Errorf("failed run rooms = %q, want 0/50", rows[1][2])
	}
}

func TestHistorySelect(t *testing.T) {
	src := sampleHistory()
	m := NewHistoryModel(src, 100, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(HistoryModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(HistoryModel)

	if cmd == nil {
		t.Fatal("select should quit the browser")
	}
	sel := m.Selected()
	if sel == nil || sel.Seed != 42 {
		t.Fatalf("Selected() = %+v, want seed 42", sel)
	}
}

func TestHistoryRefresh(t *testing.T) {
	src := sampleHistory()
	m := NewHistoryModel(src, 100, 30)

	next, _ := m.Update(runeKey('r'))
	m = next.(HistoryModel)

	if src.calls != 2 {
		t.Errorf("source called %d times, want 2", src.calls)
	}
	if !strings.Contains(m.View(), "GENERATION HISTORY (2)") {
		t.Error("title should show the row count")
	}
}

func TestHistoryViewStates(t *testing.T) {
	empty := NewHistoryModel(&fakeHistory{}, 100, 30)
	if !strings.Contains(empty.View(), "No generations recorded yet") {
		t.Error("empty history should say so")
	}

	broken := NewHistoryModel(&fakeHistory{err: errors.New("disk on fire")}, 100, 30)
	if !strings.Contains(broken.View(), "disk on fire") {
		t.Error("load error should be shown")
	}

	next, _ := broken.Update(runeKey('q'))
	if next.(HistoryModel).View() != "" {
		t.Error("quitting browser renders nothing")
	}
}
