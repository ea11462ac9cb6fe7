package keyboard

import "testing"

func TestLocate(t *testing.T) {
	tests := []struct {
		name string
		r    rune
		pos  Position
		ok   bool
	}{
		{name: "lowercase letter", r: 'a', pos: Position{Row: 2, Col: 0}, ok: true},
		{name: "uppercase maps to lowercase key", r: 'A', pos: Position{Row: 2, Col: 0}, ok: true},
		{name: "digit", r: '2', pos: Position{Row: 0, Col: 2}, ok: true},
		{name: "shifted symbol maps to base key", r: '@', pos: Position{Row: 0, Col: 2}, ok: true},
		{name: "question mark maps to slash", r: '?', pos: Position{Row: 3, Col: 9}, ok: true},
		{name: "space", r: ' ', pos: Position{Row: 4, Col: 0}, ok: true},
		{name: "apostrophe", r: '\'', pos: Position{Row: 2, Col: 10}, ok: true},
		{name: "unknown rune", r: 'é', ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := Locate(tt.r)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && pos != tt.pos {
				t.Fatalf("Locate(%q) = %+v, want %+v", tt.r, pos, tt.pos)
			}
		})
	}
}

func TestLocateCoversShiftTable(t *testing.T) {
	for sym, base := range shifted {
		symPos, ok := Locate(sym)
		if !ok {
			t.Fatalf("Locate(%q) not found", sym)
		}
		basePos, ok := Locate(base)
		if !ok {
			t.Fatalf("Locate(%q) not found", base)
		}
		if symPos != basePos {
			t.Fatalf("Locate(%q) = %+v, want position of %q (%+v)", sym, symPos, base, basePos)
		}
	}
}

func TestNeedsShift(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{r: 'a', want: false},
		{r: 'A', want: true},
		{r: '2', want: false},
		{r: '@', want: true},
		{r: ' ', want: false},
		{r: '.', want: false},
		{r: '"', want: true},
	}
	for _, tt := range tests {
		if got := NeedsShift(tt.r); got != tt.want {
			t.Errorf("NeedsShift(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
