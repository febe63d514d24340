package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-dungeon/internal/core"
	"github.com/vovakirdan/tui-dungeon/internal/dungeon"
)

func TestParseVec(t *testing.T) {
	tests := []struct {
		in      string
		want    core.Vec2
		wantErr bool
	}{
		{"3,4", core.V(3, 4), false},
		{"-3.5, 10", core.V(-3.5, 10), false},
		{"0,0", core.V(0, 0), false},
		{"3", core.Vec2{}, true},
		{"a,b", core.Vec2{}, true},
	}
	for _, tt := range tests {
		got, err := parseVec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseVec(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseVec(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestPrintLayout(t *testing.T) {
	p := dungeon.DefaultParams()
	p.Seed = 5
	layout, err := dungeon.Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var ascii bytes.Buffer
	if err := printLayout(&ascii, layout, "ascii"); err != nil {
		t.Fatalf("ascii: %v", err)
	}
	lines := strings.Split(strings.TrimRight(ascii.String(), "\n"), "\n")
	if len(lines) != layout.Grid.Diameter+1 {
		t.Errorf("ascii output has %d lines, want grid rows plus summary", len(lines))
	}
	if !strings.HasPrefix(lines[len(lines)-1], "seed 5:") {
		t.Errorf("last line %q should be the summary", lines[len(lines)-1])
	}

	var js bytes.Buffer
	if err := printLayout(&js, layout, "json"); err != nil {
		t.Fatalf("json: %v", err)
	}
	var decoded struct {
		Seed     uint32 `json:"seed"`
		Diameter int    `json:"diameter"`
	}
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Seed != 5 || decoded.Diameter != layout.Grid.Diameter {
		t.Errorf("decoded %+v", decoded)
	}
}
