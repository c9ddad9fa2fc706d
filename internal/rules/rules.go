package rules

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/ppiankov/clarity/internal/model"
	"gopkg.in/yaml.v3"
)

// Tables holds every static lookup table used by the analyzers. A Tables
// value is built once at startup and is read-only afterwards, so it can be
// shared by concurrent analyses.
type Tables struct {
	Grammar       []GrammarRule
	Homophones    map[string]Homophone
	VaguePronouns []string
	VagueWords    []string
	Irregular     []IrregularVerb
	ActionVerbs   []string

	vaguePronouns map[string]struct{}
	vagueWords    map[string]struct{}
	vaguePhrases  [][]string
	byBase        map[string]IrregularVerb
	byParticiple  map[string]string // participle -> base
	byForm        map[string]string // inflected action verb form -> base
}

// Default returns the built-in tables
func Default() *Tables {
	t := &Tables{
		Grammar:       defaultGrammarRules(),
		Homophones:    defaultHomophones(),
		VaguePronouns: defaultVaguePronouns(),
		VagueWords:    defaultVagueWords(),
		Irregular:     defaultIrregularVerbs(),
		ActionVerbs:   defaultActionVerbs(),
	}
	t.index()
	return t
}

// Extension is the YAML shape of a vocabulary extension file. Entries are
// appended to the built-in tables; homophones with an existing key replace
// the built-in entry.
type Extension struct {
	GrammarRules   []RuleDefinition     `yaml:"grammar_rules"`
	Homophones     map[string]Homophone `yaml:"homophones"`
	VaguePronouns  []string             `yaml:"vague_pronouns"`
	VagueWords     []string             `yaml:"vague_words"`
	IrregularVerbs []IrregularVerb      `yaml:"irregular_verbs"`
	ActionVerbs    []string             `yaml:"action_verbs"`
}

// RuleDefinition is a grammar rule as written in an extension file. An
// empty Replacement suggests the trimmed matched span.
type RuleDefinition struct {
	ID          string `yaml:"id"`
	Category    string `yaml:"category"`
	Message     string `yaml:"message"`
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement,omitempty"`
}

// Load returns the built-in tables extended with the YAML file at path.
// An empty path returns Default().
func Load(path string) (*Tables, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var ext Extension
	if err := yaml.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	if err := t.Extend(ext); err != nil {
		return nil, fmt.Errorf("extend rules from %s: %w", path, err)
	}
	return t, nil
}

// Extend merges ext into the tables and rebuilds the lookup indexes.
// It must only be called before the tables are shared.
func (t *Tables) Extend(ext Extension) error {
	for _, def := range ext.GrammarRules {
		rule, err := def.compile()
		if err != nil {
			return err
		}
		t.Grammar = append(t.Grammar, rule)
	}

	for word, h := range ext.Homophones {
		t.Homophones[strings.ToLower(word)] = h
	}
	t.VaguePronouns = append(t.VaguePronouns, lowerAll(ext.VaguePronouns)...)
	t.VagueWords = append(t.VagueWords, lowerAll(ext.VagueWords)...)
	t.Irregular = append(t.Irregular, ext.IrregularVerbs...)
	t.ActionVerbs = append(t.ActionVerbs, lowerAll(ext.ActionVerbs)...)

	t.index()
	return nil
}

func (s RuleDefinition) compile() (GrammarRule, error) {
	if s.ID == "" {
		return GrammarRule{}, fmt.Errorf("grammar rule without id")
	}
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return GrammarRule{}, fmt.Errorf("compile rule %s: %w", s.ID, err)
	}

	category := model.Category(strings.ToUpper(s.Category))
	if category == "" {
		category = model.CategoryOther
	}

	replacement := Replacement{Kind: ReplaceMatch}
	if s.Replacement != "" {
		replacement = Replacement{Kind: ReplaceLiteral, Literal: s.Replacement}
	}

	return GrammarRule{
		ID:          s.ID,
		Category:    category,
		Message:     s.Message,
		Pattern:     re,
		Replacement: replacement,
	}, nil
}

func (t *Tables) index() {
	t.vaguePronouns = make(map[string]struct{}, len(t.VaguePronouns))
	for _, p := range t.VaguePronouns {
		t.vaguePronouns[p] = struct{}{}
	}

	t.vagueWords = make(map[string]struct{}, len(t.VagueWords))
	t.vaguePhrases = nil
	for _, w := range t.VagueWords {
		if fields := strings.Fields(w); len(fields) > 1 {
			t.vaguePhrases = append(t.vaguePhrases, fields)
			continue
		}
		t.vagueWords[w] = struct{}{}
	}

	t.byBase = make(map[string]IrregularVerb, len(t.Irregular))
	t.byParticiple = make(map[string]string, len(t.Irregular))
	for _, v := range t.Irregular {
		if _, exists := t.byBase[v.Base]; !exists {
			t.byBase[v.Base] = v
		}
		// first entry wins for shared participles
		if _, exists := t.byParticiple[v.Participle]; !exists {
			t.byParticiple[v.Participle] = v.Base
		}
	}

	t.byForm = make(map[string]string, len(t.ActionVerbs)*3)
	for _, base := range t.ActionVerbs {
		t.byForm[base] = base
		t.byForm[ThirdPerson(base)] = base
		t.byForm[t.Past(base)] = base
	}
}

// Homophone returns the homophone entry for a lower-cased word
func (t *Tables) Homophone(word string) (Homophone, bool) {
	h, ok := t.Homophones[word]
	return h, ok
}

// IsVaguePronoun reports whether a lower-cased word is a vague pronoun
func (t *Tables) IsVaguePronoun(word string) bool {
	_, ok := t.vaguePronouns[word]
	return ok
}

// IsVagueWord reports whether a lower-cased single word is vague
func (t *Tables) IsVagueWord(word string) bool {
	_, ok := t.vagueWords[word]
	return ok
}

// VaguePhrases returns the multi-word vague entries as token sequences
func (t *Tables) VaguePhrases() [][]string {
	return t.vaguePhrases
}

// Participle returns the past participle of base: irregular table first,
// then the regular suffixation rules.
func (t *Tables) Participle(base string) string {
	base = strings.ToLower(base)
	if v, ok := t.byBase[base]; ok {
		return v.Participle
	}
	return RegularParticiple(base)
}

// Past returns the simple past of base
func (t *Tables) Past(base string) string {
	base = strings.ToLower(base)
	if v, ok := t.byBase[base]; ok {
		return v.Past
	}
	return RegularParticiple(base)
}

// BaseFromParticiple maps a past participle back to its base verb: the
// irregular table, then the regular participles of the action verbs, then
// stripping a trailing "ed".
func (t *Tables) BaseFromParticiple(participle string) string {
	p := strings.ToLower(participle)
	if base, ok := t.byParticiple[p]; ok {
		return base
	}
	if base, ok := t.byForm[p]; ok && RegularParticiple(base) == p {
		return base
	}
	if len(p) > 2 && strings.HasSuffix(p, "ed") {
		return p[:len(p)-2]
	}
	return p
}

// IsParticiple reports whether word has the shape of a past participle:
// an -ed ending or a member of the irregular participle set.
func (t *Tables) IsParticiple(word string) bool {
	w := strings.ToLower(word)
	if len(w) >= 4 && strings.HasSuffix(w, "ed") {
		return true
	}
	_, ok := t.byParticiple[w]
	return ok
}

// ActionVerb returns the base form of an inflected action verb
// (base, third-person singular or simple past).
func (t *Tables) ActionVerb(word string) (string, bool) {
	base, ok := t.byForm[strings.ToLower(word)]
	return base, ok
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
