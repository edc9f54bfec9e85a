package lyrics

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain text unchanged",
			raw:  "Verse one\nVerse two",
			want: "Verse one\nVerse two",
		},
		{
			name: "language prefix stripped",
			raw:  "en||Hello world",
			want: "Hello world",
		},
		{
			name: "three letter prefix stripped",
			raw:  "fra||Bonjour",
			want: "Bonjour",
		},
		{
			name: "prefix with leading punctuation",
			raw:  "  *en||Hello",
			want: "Hello",
		},
		{
			name: "stacked language prefixes",
			raw:  "en||fr||Hello",
			want: "Hello",
		},
		{
			name: "double bar without language code kept",
			raw:  "chorus||repeat",
			want: "chorus||repeat",
		},
		{
			name: "contributors line dropped",
			raw:  "42 Contributors\nVerse one",
			want: "Verse one",
		},
		{
			name: "translations line dropped",
			raw:  "Verse one\nTranslations available\nVerse two",
			want: "Verse one\nVerse two",
		},
		{
			name: "paroles header dropped",
			raw:  "Paroles de la chanson Hello par Adele\nBonjour",
			want: "Bonjour",
		},
		{
			name: "promo block truncated",
			raw:  "Verse one\nVerse two\nYou Might Also Like\nOther song",
			want: "Verse one\nVerse two",
		},
		{
			name: "blank edges trimmed",
			raw:  "\n\nVerse one\nVerse two\n\n",
			want: "Verse one\nVerse two",
		},
		{
			name: "interior blank line kept",
			raw:  "Verse one\n\nVerse two",
			want: "Verse one\n\nVerse two",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "only boilerplate",
			raw:  "12 Contributors\nYou might also like",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  "   \n\t\n  ",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clean(tt.raw)
			if got != tt.want {
				t.Errorf("Clean() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	raw := "en||fr||First line\n3 Contributors\nVerse one\n\nVerse two\nYou might also like\nPromo"
	once := Clean(raw)
	if want := "First line\nVerse one\n\nVerse two"; once != want {
		t.Fatalf("Clean() = %q, want %q", once, want)
	}
	twice := Clean(once)
	if once != twice {
		t.Errorf("Clean not idempotent: first %q, second %q", once, twice)
	}
}
