package voice

import (
	"strings"
	"unicode"

	"github.com/ppiankov/clarity/internal/model"
	"github.com/ppiankov/clarity/internal/rules"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	toActiveRule  = "[Object] [be] [participle] by [Subject] -> [Subject] [verb] [Object]"
	toPassiveRule = "[Subject] [verb] [Object] -> [Object] was [participle] by [Subject]"
)

// auxiliaries before the verb put a sentence outside the Subject-Verb-Object template
var auxiliaries = map[string]struct{}{
	"will": {}, "would": {}, "can": {}, "could": {}, "shall": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "do": {}, "does": {}, "did": {},
	"not": {}, "is": {}, "are": {}, "was": {}, "were": {}, "am": {},
	"has": {}, "have": {}, "had": {},
}

// Analyzer classifies sentences as active or passive and suggests a
// rewrite in the opposite voice
type Analyzer struct {
	tables  *rules.Tables
	beForms [][]string
}

// New creates an Analyzer over the given tables
func New(tables *rules.Tables) *Analyzer {
	forms := rules.BeForms()
	beForms := make([][]string, len(forms))
	for i, f := range forms {
		beForms[i] = strings.Fields(f)
	}
	return &Analyzer{
		tables:  tables,
		beForms: beForms,
	}
}

// Analyze classifies s and, unless it is unclear, attempts a conversion.
// A sentence that does not fit a conversion template gets no suggestions.
func (a *Analyzer) Analyze(s model.Sentence) model.SentenceVoice {
	result := model.SentenceVoice{
		Sentence:    s,
		VoiceType:   a.Classify(s.Text),
		Suggestions: []model.VoiceSuggestion{},
	}

	var (
		suggestion model.VoiceSuggestion
		ok         bool
	)
	switch result.VoiceType {
	case model.VoicePassive:
		suggestion, ok = a.ToActive(s.Text)
	case model.VoiceActive:
		suggestion, ok = a.ToPassive(s.Text)
	}
	if ok {
		result.Suggestions = append(result.Suggestions, suggestion)
	}
	return result
}

// Classify returns PASSIVE when a be-form is directly followed by a
// participle-shaped word, UNCLEAR for fewer than two words, ACTIVE otherwise.
func (a *Analyzer) Classify(sentence string) model.VoiceType {
	toks := tokenize(sentence)
	if countWords(toks) < 2 {
		return model.VoiceUnclear
	}
	if _, _, ok := a.findPassive(toks); ok {
		return model.VoicePassive
	}
	return model.VoiceActive
}

// findPassive locates the first be-form + participle pair, returning the
// index of the auxiliary and of the participle
func (a *Analyzer) findPassive(toks []token) (aux, participle int, ok bool) {
	for i := range toks {
		if n := a.beFormAt(toks, i); n > 0 {
			j := i + n
			if j < len(toks) && a.tables.IsParticiple(toks[j].word) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// beFormAt returns the number of tokens of the be-form starting at i, or 0
func (a *Analyzer) beFormAt(toks []token, i int) int {
	for _, form := range a.beForms {
		if i+len(form) > len(toks) {
			continue
		}
		match := true
		for k, w := range form {
			if toks[i+k].word != w {
				match = false
				break
			}
		}
		if match {
			return len(form)
		}
	}
	return 0
}

// ToActive rewrites "[Object] [be] [participle] by [Subject]" as
// "[Subject] [verb] [Object]." The verb takes the third-person ending
// only when the auxiliary is "was"; other tenses are flattened.
func (a *Analyzer) ToActive(sentence string) (model.VoiceSuggestion, bool) {
	toks := tokenize(sentence)
	aux, p, ok := a.findPassive(toks)
	if !ok || aux == 0 || p+2 >= len(toks) || toks[p+1].word != "by" {
		return model.VoiceSuggestion{}, false
	}

	agent, trailing := splitAgent(toks[p+2:])
	if len(agent) == 0 || (len(agent) > 1 && rules.IsPersonalPronoun(agent[0].word)) {
		return model.VoiceSuggestion{}, false
	}

	object := objectPhrase(toks[:aux])
	subject := subjectPhrase(agent)
	if object == "" || subject == "" {
		return model.VoiceSuggestion{}, false
	}
	if len(trailing) > 0 {
		object += " " + join(trailing)
	}

	verb := a.tables.BaseFromParticiple(toks[p].word)
	if toks[aux].word == "was" && !rules.IsNonThirdPerson(firstWord(subject)) {
		verb = rules.ThirdPerson(verb)
	}

	return model.VoiceSuggestion{
		Direction:   model.PassiveToActive,
		Original:    strings.TrimSpace(sentence),
		Converted:   a.capitalize(subject + " " + verb + " " + object + "."),
		Rule:        toActiveRule,
		Explanation: "Active voice is more direct and engaging. The subject performs the action.",
		Tone:        "direct, energetic",
	}, true
}

// ToPassive rewrites "[Subject] [verb] [Object]" as
// "[Object] was [participle] by [Subject]." The verb must be one of the
// known action verbs; the auxiliary is always "was".
func (a *Analyzer) ToPassive(sentence string) (model.VoiceSuggestion, bool) {
	toks := tokenize(sentence)

	for k := 1; k < len(toks)-1; k++ {
		if _, aux := auxiliaries[toks[k-1].word]; aux {
			return model.VoiceSuggestion{}, false
		}

		base, ok := a.tables.ActionVerb(toks[k].word)
		if !ok {
			continue
		}
		// "The cook cooked": a base form after a determiner is a noun
		if toks[k].word == base && rules.IsDeterminer(toks[k-1].word) {
			continue
		}

		subject := objectPhrase(toks[:k])
		object := subjectPhrase(toks[k+1:])
		if subject == "" || object == "" {
			return model.VoiceSuggestion{}, false
		}

		participle := a.tables.Participle(base)
		return model.VoiceSuggestion{
			Direction:   model.ActiveToPassive,
			Original:    strings.TrimSpace(sentence),
			Converted:   a.capitalize(object + " was " + participle + " by " + subject + "."),
			Rule:        toPassiveRule,
			Explanation: "Passive voice emphasizes the object. The subject receives the action.",
			Tone:        "formal, object-focused",
		}, true
	}
	return model.VoiceSuggestion{}, false
}

// capitalize upper-cases the first word's initial. Casers keep state, so
// one is created per call.
func (a *Analyzer) capitalize(s string) string {
	title := cases.Title(language.English, cases.NoLower)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return title.String(s)
	}
	return title.String(s[:i]) + s[i:]
}

type token struct {
	text string // as written, trailing sentence punctuation removed
	word string // lower-cased, letters, digits and apostrophes only
}

func tokenize(sentence string) []token {
	body := strings.TrimRightFunc(strings.TrimSpace(sentence), isClosing)

	fields := strings.Fields(body)
	toks := make([]token, 0, len(fields))
	for _, f := range fields {
		toks = append(toks, token{
			text: f,
			word: strings.ToLower(strings.TrimFunc(f, isNotWordRune)),
		})
	}
	return toks
}

func countWords(toks []token) int {
	n := 0
	for _, t := range toks {
		if t.word != "" {
			n++
		}
	}
	return n
}

func isClosing(r rune) bool {
	return strings.ContainsRune(".!?\"')]”’", r)
}

func isNotWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}

// objectPhrase renders tokens that move into object (or agent) position
func objectPhrase(toks []token) string {
	if len(toks) == 1 {
		if obj := rules.ObjectCase(toks[0].word); obj != toks[0].word {
			return obj
		}
	}
	return lowerDeterminer(join(toks))
}

// splitAgent cuts the agent phrase at the first time adverbial; the
// adverbial and anything after it trail the active sentence
func splitAgent(toks []token) (agent, trailing []token) {
	for i, t := range toks {
		if rules.IsTimeAdverb(t.word) {
			return toks[:i], toks[i:]
		}
	}
	return toks, nil
}

// subjectPhrase renders tokens that move into subject position
func subjectPhrase(toks []token) string {
	if len(toks) == 1 {
		if subj := rules.SubjectCase(toks[0].word); subj != toks[0].word {
			if subj == "i" {
				return "I"
			}
			return subj
		}
	}
	return join(toks)
}

func lowerDeterminer(phrase string) string {
	head, rest, _ := strings.Cut(phrase, " ")
	if !rules.IsDeterminer(head) {
		return phrase
	}
	if rest == "" {
		return strings.ToLower(head)
	}
	return strings.ToLower(head) + " " + rest
}

func firstWord(phrase string) string {
	head, _, _ := strings.Cut(phrase, " ")
	return strings.ToLower(head)
}

func join(toks []token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.text
	}
	return strings.Join(parts, " ")
}
