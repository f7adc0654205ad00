package summarizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestSummarize_EmptyInput(t *testing.T) {
	s := New(DefaultConfig())

	if got := s.Summarize(""); got != "" {
		t.Errorf("Summarize(\"\") = %q, want empty", got)
	}
	if got := s.Summarize("   \n\t "); got != "" {
		t.Errorf("Summarize(whitespace) = %q, want empty", got)
	}
}

func TestSummarize_ShortTextVerbatim(t *testing.T) {
	s := New(DefaultConfig())

	text := "Short texts pass through. Nothing gets dropped."
	want := "Short texts pass through. Nothing gets dropped."
	if got := s.Summarize(text); got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
}

func TestSummarize_UnscorableFallsBackToLeading(t *testing.T) {
	s := New(DefaultConfig())

	// Every token is a stopword or too short, so the frequency table is
	// empty and the leading sentences win.
	if got := s.Summarize("A. B. C. D."); got != "A. B. C." {
		t.Errorf("Summarize() = %q, want %q", got, "A. B. C.")
	}
}

func TestSummarize_PicksHighFrequencySentences(t *testing.T) {
	s := New(DefaultConfig())

	text := "Golang services scale. Cats sleep. Golang golang concurrency helps. Dogs bark. Golang tooling shines."
	want := "Golang services scale. Golang golang concurrency helps. Golang tooling shines."
	if got := s.Summarize(text); got != want {
		t.Errorf("Summarize() = %q, want %q", got, want)
	}
}

func TestSummarize_PreservesOriginalOrder(t *testing.T) {
	s := New(Config{MaxSentences: 2, MinWordLen: 2})

	text := "Opening remarks matter little. Keyword keyword keyword anchors this. Filler sits here. Keyword closes strongly."
	got := s.Summarize(text)

	first := strings.Index(got, "anchors")
	second := strings.Index(got, "closes")
	if first == -1 || second == -1 {
		t.Fatalf("Summarize() = %q, want both keyword sentences", got)
	}
	if first > second {
		t.Errorf("Summarize() = %q, sentences out of source order", got)
	}
}

func TestSummarize_CustomStopwords(t *testing.T) {
	s := New(Config{
		MaxSentences: 1,
		MinWordLen:   2,
		Stopwords:    []string{"keyword", "anchors", "this", "closes", "strongly", "opening", "remarks", "matter", "little", "filler", "sits", "here"},
	})

	text := "Opening remarks matter little. Keyword keyword keyword anchors this. Filler sits here. Keyword closes strongly."
	// With everything stopped out the table is empty and the first
	// sentence is the whole summary.
	if got := s.Summarize(text); got != "Opening remarks matter little." {
		t.Errorf("Summarize() = %q, want first sentence", got)
	}
}

func TestSummarize_RepeatedSentences(t *testing.T) {
	s := New(DefaultConfig())

	text := "Same line repeats verbatim. Unique filler sentence here. Same line repeats verbatim. Another distinct thought follows. Closing words arrive now."
	got := s.Summarize(text)

	if n := len(SplitSentences(got)); n > 3 {
		t.Errorf("summary has %d sentences, want at most 3", n)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "periods",
			text: "One. Two. Three.",
			want: []string{"One.", "Two.", "Three."},
		},
		{
			name: "mixed terminators",
			text: "Really? Yes! Fine.",
			want: []string{"Really?", "Yes!", "Fine."},
		},
		{
			name: "no trailing terminator",
			text: "First done. Second keeps going",
			want: []string{"First done.", "Second keeps going"},
		},
		{
			name: "terminator without space does not split",
			text: "v1.2 shipped today. Done.",
			want: []string{"v1.2 shipped today.", "Done."},
		},
		{
			name: "collapsing run of whitespace",
			text: "One.   \n Two.",
			want: []string{"One.", "Two."},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitSentences(tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNew_ZeroMinWordLenUsesDefault(t *testing.T) {
	s := New(Config{MaxSentences: 3})

	// "go" repeats heavily but is two letters; with the length filter in
	// effect it cannot drag its sentence into the summary.
	text := "Go go go everywhere. Cats sleep. Dogs bark. Birds sing quietly."
	got := s.Summarize(text)

	if strings.Contains(got, "Go go go") {
		t.Errorf("Summarize() = %q, want short tokens excluded from scoring", got)
	}
}

func TestNew_ZeroMaxSentencesUsesDefault(t *testing.T) {
	s := New(Config{})

	text := "One left. Two right. Three up. Four down. Five across."
	if n := len(SplitSentences(s.Summarize(text))); n != 3 {
		t.Errorf("summary has %d sentences, want 3", n)
	}
}
