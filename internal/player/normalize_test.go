package player

import "testing"

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		expected string
		want     bool
	}{
		{name: "punctuation and case", answer: "сәлем", expected: "Сәлем!", want: true},
		{name: "whitespace collapsed", answer: "  мен   барамын ", expected: "Мен барамын.", want: true},
		{name: "commas and question mark", answer: "иә, солай?", expected: "иә солай", want: true},
		{name: "word order matters", answer: "барамын мен", expected: "мен барамын", want: false},
		{name: "decomposed letters", answer: "мен барма\u0438\u0306мын", expected: "Мен бармаймын", want: true},
		{name: "different word", answer: "су", expected: "алма", want: false},
		{name: "empty answer", answer: "", expected: "алма", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.answer, tt.expected); got != tt.want {
				t.Fatalf("IsCorrect(%q, %q) = %v, want %v", tt.answer, tt.expected, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  Қазақ,  тілі!  "); got != "қазақ тілі" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestCleanOptions(t *testing.T) {
	got := CleanOptions([]string{" алма ", "су", "алма", "", "  ", "нан"})
	want := []string{"алма", "су", "нан"}

	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}
