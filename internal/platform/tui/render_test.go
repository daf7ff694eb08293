package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func TestEveryColorHasStyle(t *testing.T) {
	for c := core.ColorDefault; c <= core.ColorTileSuper; c++ {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.DrawText(0, 0, "hello")
	s.DrawText(0, 1, "2048")

	if got, want := RenderScreen(s), "hello\n2048 "; got != want {
		t.Errorf("RenderScreen() = %q, want %q", got, want)
	}
}

func TestRenderScreenKeepsColoredRuns(t *testing.T) {
	s := core.NewScreen(12, 1)
	s.DrawText(0, 0, "tile")
	s.DrawTextColor(6, 0, "2048", core.TileColor(11))

	out := RenderScreen(s)
	if !strings.HasPrefix(out, "tile  ") {
		t.Errorf("RenderScreen() = %q, want plain prefix", out)
	}
	if !strings.Contains(out, "2048") {
		t.Errorf("RenderScreen() = %q, missing tile value", out)
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{10, 100 * time.Millisecond},
		{0, time.Second / defaultTickRate},
		{-5, time.Second / defaultTickRate},
	}
	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.want {
			t.Errorf("tickInterval(%d) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}
