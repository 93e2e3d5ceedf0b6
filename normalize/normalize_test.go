package normalize

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lower", "BGH", "bgh"},
		{"single space becomes separator", "Art. 5", "art.  5"},
		{"runs collapse", "Art.   5\t\tGG", "art.  5  gg"},
		{"newlines", "co-\ndefendant", "co-  defendant"},
		{"trim", "  OLG München \n", "olg  münchen"},
		{"nbsp", "§\u00a05", "§  5"},
		{"nfc", "Mu\u0308nchen", "m\u00fcnchen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.in); got != tt.want {
				t.Errorf("Text(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextIdempotent(t *testing.T) {
	in := "  Landgericht\nBerlin,  Urteil vom 1. Januar 2020 "
	once := Text(in)
	if twice := Text(once); twice != once {
		t.Errorf("Text not idempotent: %q -> %q", once, twice)
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Section 5", "section\n5") {
		t.Error("expected case and whitespace insensitive equality")
	}
	if Equal("section 5", "section 6") {
		t.Error("expected different texts to differ")
	}
}

func TestCollapse(t *testing.T) {
	if got := Collapse("  BGH,\n Urteil\tvom  "); got != "BGH, Urteil vom" {
		t.Errorf("Collapse() = %q", got)
	}
}
