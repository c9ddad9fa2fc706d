package ambiguity

import (
	"testing"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDetector() *Detector {
	return New(rules.Default())
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"they're", "going", "there"}, Words("They're going  there!"))
	assert.Equal(t, []string{"etc"}, Words("etc., 42 -- ..."))
	assert.Empty(t, Words(""))
}

func TestFind_Example(t *testing.T) {
	a := newDetector().Analyze(model.Sentence{Text: "I saw it there.", End: 15})

	require.Len(t, a.Ambiguities, 2)

	assert.Equal(t, model.AmbiguityVaguePronoun, a.Ambiguities[0].Kind)
	assert.Equal(t, "it", a.Ambiguities[0].Word)

	h := a.Ambiguities[1]
	assert.Equal(t, model.AmbiguityHomophone, h.Kind)
	assert.Equal(t, "there", h.Word)
	assert.Contains(t, h.Meaning, "at that location")
	assert.Equal(t, "Let's go there", h.Example)
	assert.Contains(t, h.Suggestion, `"their"`)

	assert.Equal(t, 60, a.ClarityScore)
}

func TestFind_DeduplicatesRepeats(t *testing.T) {
	findings := newDetector().Find("It is what it is, and it stays.")

	count := 0
	for _, f := range findings {
		if f.Word == "it" {
			count++
			assert.Equal(t, model.AmbiguityVaguePronoun, f.Kind)
		}
	}
	assert.Equal(t, 1, count)
}

func TestFind_SameWordDifferentKinds(t *testing.T) {
	// "no" is only a homophone; "that" is only a vague pronoun
	findings := newDetector().Find("No, that is stuff and things and so on.")

	words := map[string]model.AmbiguityKind{}
	for _, f := range findings {
		words[f.Word] = f.Kind
	}
	assert.Equal(t, model.AmbiguityHomophone, words["no"])
	assert.Equal(t, model.AmbiguityVaguePronoun, words["that"])
	assert.Equal(t, model.AmbiguityVagueWord, words["stuff"])
	assert.Equal(t, model.AmbiguityVagueWord, words["things"])
	assert.Equal(t, model.AmbiguityVagueWord, words["and so on"])
}

func TestFind_PhraseAcrossPunctuation(t *testing.T) {
	findings := newDetector().Find("Apples, pears, and so on.")
	require.Len(t, findings, 1)
	assert.Equal(t, "and so on", findings[0].Word)
}

func TestFind_CleanSentence(t *testing.T) {
	a := newDetector().Analyze(model.Sentence{Text: "The chef cooked the meal."})
	assert.NotNil(t, a.Ambiguities)
	assert.Empty(t, a.Ambiguities)
	assert.Equal(t, 100, a.ClarityScore)
}

func TestAnalyze_ScoreFloor(t *testing.T) {
	a := newDetector().Analyze(model.Sentence{Text: "This and that and it and they and them somehow."})
	assert.GreaterOrEqual(t, len(a.Ambiguities), 6)
	assert.Equal(t, 0, a.ClarityScore)
}

func TestFind_Order(t *testing.T) {
	findings := newDetector().Find("Something went there.")
	require.Len(t, findings, 2)
	assert.Equal(t, "something", findings[0].Word)
	assert.Equal(t, "there", findings[1].Word)
}
