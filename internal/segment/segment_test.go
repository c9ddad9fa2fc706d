package segment

import (
	"strings"
	"testing"
	"unicode"
)

func TestSplit_Basic(t *testing.T) {
	text := "The chef cooked the meal. Was it good? Yes!"
	sentences := Split(text)

	expected := []string{"The chef cooked the meal.", "Was it good?", "Yes!"}
	if len(sentences) != len(expected) {
		t.Fatalf("expected %d sentences, got %d: %+v", len(expected), len(sentences), sentences)
	}
	for i, s := range sentences {
		if s.Text != expected[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, expected[i], s.Text)
		}
		if text[s.Start:s.End] != s.Text {
			t.Errorf("sentence %d: offsets [%d,%d) do not locate %q", i, s.Start, s.End, s.Text)
		}
	}
}

func TestSplit_EmptyAndWhitespace(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		if got := Split(text); len(got) != 0 {
			t.Errorf("Split(%q): expected no sentences, got %+v", text, got)
		}
	}
}

func TestSplit_NoTerminator(t *testing.T) {
	sentences := Split("  just a fragment without punctuation  ")
	if len(sentences) != 1 {
		t.Fatalf("expected 1 sentence, got %d", len(sentences))
	}
	if sentences[0].Text != "just a fragment without punctuation" {
		t.Errorf("unexpected text: %q", sentences[0].Text)
	}
	if sentences[0].Start != 2 {
		t.Errorf("expected start 2, got %d", sentences[0].Start)
	}
}

func TestSplit_TrailingFragment(t *testing.T) {
	sentences := Split("First one. And a trailing part")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d", len(sentences))
	}
	if sentences[1].Text != "And a trailing part" {
		t.Errorf("unexpected trailing sentence: %q", sentences[1].Text)
	}
}

func TestSplit_RepeatedSentencesHaveDistinctOffsets(t *testing.T) {
	text := "It rained. It rained. It rained."
	sentences := Split(text)
	if len(sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %d", len(sentences))
	}
	for i, s := range sentences {
		if s.Start != i*11 {
			t.Errorf("sentence %d: expected start %d, got %d", i, i*11, s.Start)
		}
	}
}

func TestSplit_TerminatorRunsAndClosers(t *testing.T) {
	text := `Really?! He said "stop." Then he left...`
	got := Texts(text)
	expected := []string{"Really?!", `He said "stop."`, "Then he left..."}
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sentence %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestSplit_DecimalIsNotBoundary(t *testing.T) {
	got := Texts("Pi is about 3.14 today. Fine.")
	if len(got) != 2 || got[0] != "Pi is about 3.14 today." {
		t.Errorf("unexpected split: %v", got)
	}
}

func TestSplit_PunctuationOnlySegmentCarriedForward(t *testing.T) {
	got := Texts("Hi. ... Bye.")
	if len(got) != 2 || got[1] != "... Bye." {
		t.Errorf("unexpected split: %v", got)
	}
}

func TestSplit_ReconstructsContent(t *testing.T) {
	inputs := []string{
		"She have three cats.  They is hungry!",
		"No terminator here",
		"Multi\nline. text? yes...  and more",
		"Ünïcödé wörds. Ärger!",
		"...",
		"a.b.c. d",
	}

	strip := func(s string) string {
		return strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
	}

	for _, in := range inputs {
		joined := strings.Join(Texts(in), "")
		if strip(joined) != strip(in) {
			t.Errorf("content lost for %q: got %q", in, joined)
		}
	}
}

func TestOwner(t *testing.T) {
	text := "One.  Two. Three."
	sentences := Split(text)

	cases := []struct {
		offset int
		want   int
	}{
		{0, 0},
		{4, 0}, // inter-sentence whitespace belongs to the preceding sentence
		{6, 1},
		{11, 2},
		{100, 2},
	}
	for _, c := range cases {
		if got := Owner(sentences, c.offset); got != c.want {
			t.Errorf("Owner(%d): expected %d, got %d", c.offset, c.want, got)
		}
	}

	if Owner(nil, 3) != -1 {
		t.Error("expected -1 for no sentences")
	}
}
