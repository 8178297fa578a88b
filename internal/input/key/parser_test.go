package key

import "testing"

func TestParseSingleCharacter(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"a", NewRuneChord('a', ModNone)},
		{"A", NewRuneChord('A', ModNone)}, // implicit Shift folds away
		{"1", NewRuneChord('1', ModNone)},
		{"@", NewRuneChord('@', ModNone)},
		{"+", NewRuneChord('+', ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseSpecialKeys(t *testing.T) {
	tests := []struct {
		spec string
		want Key
	}{
		{"Enter", KeyEnter},
		{"esc", KeyEscape},
		{"<Esc>", KeyEscape},
		{"<CR>", KeyEnter},
		{"Tab", KeyTab},
		{"F5", KeyF5},
		{"PgUp", KeyPageUp},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got.Key != tt.want {
				t.Errorf("Parse(%q).Key = %v, want %v", tt.spec, got.Key, tt.want)
			}
		})
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		spec string
		want Chord
	}{
		{"Ctrl+S", NewRuneChord('s', ModCtrl)},
		{"ctrl+shift+p", NewRuneChord('p', ModCtrl.With(ModShift))},
		{"Alt+F4", NewSpecialChord(KeyF4, ModAlt)},
		{"<C-s>", NewRuneChord('s', ModCtrl)},
		{"<C-S-p>", NewRuneChord('p', ModCtrl.With(ModShift))},
		{"<A-Enter>", NewSpecialChord(KeyEnter, ModAlt)},
		{"<C-Space>", NewRuneChord(' ', ModCtrl)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseAliases(t *testing.T) {
	for spec, want := range map[string]rune{
		"<lt>":    '<',
		"<gt>":    '>',
		"<plus>":  '+',
		"<bar>":   '|',
		"<Space>": ' ',
	} {
		got, err := Parse(spec)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", spec, err)
		}
		if got.Rune != want {
			t.Errorf("Parse(%q).Rune = %q, want %q", spec, got.Rune, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "  ", "Ctrl+", "<X-a>", "notakey", "Bogus+x"} {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) should fail", spec)
		}
	}
}

func TestParseSequenceFormats(t *testing.T) {
	spaced, err := ParseSequence("C-x C-s")
	if err != nil {
		t.Fatalf("ParseSequence error: %v", err)
	}
	angled, err := ParseSequence("<C-x><C-s>")
	if err != nil {
		t.Fatalf("ParseSequence error: %v", err)
	}
	if !spaced.Equals(angled) {
		t.Errorf("%q != %q", spaced, angled)
	}
	if spaced.Len() != 2 {
		t.Errorf("Len() = %d, want 2", spaced.Len())
	}

	single, err := ParseSequence("g")
	if err != nil {
		t.Fatalf("ParseSequence error: %v", err)
	}
	if single.Len() != 1 {
		t.Errorf("single chord sequence Len() = %d, want 1", single.Len())
	}

	empty, err := ParseSequence("")
	if err != nil || !empty.IsEmpty() {
		t.Error("empty spec should produce an empty sequence")
	}
}

func TestParseSequenceError(t *testing.T) {
	if _, err := ParseSequence("<C-x"); err == nil {
		t.Error("unterminated angle notation should fail")
	}
}
