package phrase

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain ascii passes through", in: "the quick brown fox", want: "the quick brown fox"},
		{name: "curly single quotes", in: "it’s ‘fine’", want: "it's 'fine'"},
		{name: "curly double quotes", in: "“hello”", want: `"hello"`},
		{name: "dashes", in: "a – b — c − d", want: "a - b - c - d"},
		{name: "ellipsis expands", in: "wait…", want: "wait..."},
		{name: "no-break space", in: "a b", want: "a b"},
		{name: "trademark dropped", in: "Acme™ rockets", want: "Acme rockets"},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewKeepsDisplayForm(t *testing.T) {
	p := New("Don’t stop…")
	if p.Display != "Don’t stop…" {
		t.Fatalf("Display = %q, want original text", p.Display)
	}
	if p.Typing != "Don't stop..." {
		t.Fatalf("Typing = %q, want normalized text", p.Typing)
	}
}

func TestNewTypingMayBeShorter(t *testing.T) {
	p := New("Zap™")
	if got, want := len([]rune(p.Typing)), 3; got != want {
		t.Fatalf("typing length = %d, want %d", got, want)
	}
}
