package rules

import "strings"

// IrregularVerb lists the principal parts of a verb that does not take -ed
type IrregularVerb struct {
	Base       string `yaml:"base"`
	Past       string `yaml:"past"`
	Participle string `yaml:"participle"`
}

func defaultIrregularVerbs() []IrregularVerb {
	return []IrregularVerb{
		{"be", "was", "been"},
		{"bear", "bore", "borne"},
		{"beat", "beat", "beaten"},
		{"begin", "began", "begun"},
		{"bite", "bit", "bitten"},
		{"blow", "blew", "blown"},
		{"break", "broke", "broken"},
		{"bring", "brought", "brought"},
		{"build", "built", "built"},
		{"buy", "bought", "bought"},
		{"catch", "caught", "caught"},
		{"choose", "chose", "chosen"},
		{"cut", "cut", "cut"},
		{"do", "did", "done"},
		{"draw", "drew", "drawn"},
		{"drink", "drank", "drunk"},
		{"drive", "drove", "driven"},
		{"eat", "ate", "eaten"},
		{"feed", "fed", "fed"},
		{"find", "found", "found"},
		{"fly", "flew", "flown"},
		{"forget", "forgot", "forgotten"},
		{"forgive", "forgave", "forgiven"},
		{"freeze", "froze", "frozen"},
		{"give", "gave", "given"},
		{"go", "went", "gone"},
		{"grow", "grew", "grown"},
		{"hang", "hung", "hung"},
		{"have", "had", "had"},
		{"hear", "heard", "heard"},
		{"hide", "hid", "hidden"},
		{"hit", "hit", "hit"},
		{"hold", "held", "held"},
		{"keep", "kept", "kept"},
		{"know", "knew", "known"},
		{"lead", "led", "led"},
		{"leave", "left", "left"},
		{"lend", "lent", "lent"},
		{"lose", "lost", "lost"},
		{"make", "made", "made"},
		{"mean", "meant", "meant"},
		{"meet", "met", "met"},
		{"pay", "paid", "paid"},
		{"put", "put", "put"},
		{"read", "read", "read"},
		{"ride", "rode", "ridden"},
		{"ring", "rang", "rung"},
		{"run", "ran", "run"},
		{"say", "said", "said"},
		{"see", "saw", "seen"},
		{"seek", "sought", "sought"},
		{"sell", "sold", "sold"},
		{"send", "sent", "sent"},
		{"set", "set", "set"},
		{"shake", "shook", "shaken"},
		{"shoot", "shot", "shot"},
		{"shut", "shut", "shut"},
		{"sing", "sang", "sung"},
		{"speak", "spoke", "spoken"},
		{"spend", "spent", "spent"},
		{"stand", "stood", "stood"},
		{"steal", "stole", "stolen"},
		{"strike", "struck", "struck"},
		{"sweep", "swept", "swept"},
		{"swim", "swam", "swum"},
		{"take", "took", "taken"},
		{"teach", "taught", "taught"},
		{"tear", "tore", "torn"},
		{"tell", "told", "told"},
		{"think", "thought", "thought"},
		{"throw", "threw", "thrown"},
		{"understand", "understood", "understood"},
		{"wake", "woke", "woken"},
		{"wear", "wore", "worn"},
		{"win", "won", "won"},
		{"write", "wrote", "written"},
	}
}

// defaultActionVerbs anchors the Subject-Verb-Object template
func defaultActionVerbs() []string {
	return []string{
		"bake", "break", "bring", "build", "buy", "catch", "choose", "clean", "complete",
		"cook", "create", "deliver", "design", "develop", "discover", "do", "drive", "eat",
		"enjoy", "find", "finish", "fix", "fly", "give", "hear", "implement", "invent", "know",
		"learn", "like", "love", "make", "notice", "paint", "perform", "play", "practice",
		"prefer", "prepare", "publish", "read", "repair", "review", "see", "sell", "send",
		"solve", "speak", "start", "steal", "study", "take", "teach", "throw", "understand",
		"want", "wash", "watch", "win", "write",
	}
}

// beForms are the auxiliaries of the passive signature; multi-word forms first
var beForms = []string{
	"has been", "have been", "had been",
	"is", "are", "was", "were", "be", "being", "been",
}

// subjectToObject maps subjective pronouns to their objective case
var subjectToObject = map[string]string{
	"i":    "me",
	"he":   "him",
	"she":  "her",
	"we":   "us",
	"they": "them",
	"who":  "whom",
}

var objectToSubject = map[string]string{
	"me":   "i",
	"him":  "he",
	"her":  "she",
	"us":   "we",
	"them": "they",
	"whom": "who",
}

var determiners = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"my": {}, "your": {}, "his": {}, "her": {}, "its": {}, "our": {}, "their": {},
	"some": {}, "any": {}, "each": {}, "every": {}, "no": {}, "another": {},
}

// nonThirdPerson subjects never take the -s ending
var nonThirdPerson = map[string]struct{}{
	"i": {}, "we": {}, "they": {}, "you": {},
}

// timeAdverbs close an agent phrase: "by her yesterday"
var timeAdverbs = map[string]struct{}{
	"yesterday": {}, "today": {}, "tonight": {}, "tomorrow": {}, "now": {},
	"recently": {}, "lately": {}, "again": {}, "already": {}, "soon": {},
	"once": {}, "twice": {},
}

// BeForms returns the be-auxiliaries, multi-word forms first
func BeForms() []string {
	out := make([]string, len(beForms))
	copy(out, beForms)
	return out
}

// IsDeterminer reports whether word is an article, demonstrative or possessive
func IsDeterminer(word string) bool {
	_, ok := determiners[strings.ToLower(word)]
	return ok
}

// IsNonThirdPerson reports whether a subject head word takes the plain verb form
func IsNonThirdPerson(word string) bool {
	_, ok := nonThirdPerson[strings.ToLower(word)]
	return ok
}

// IsTimeAdverb reports whether word is a standalone time adverbial
func IsTimeAdverb(word string) bool {
	_, ok := timeAdverbs[strings.ToLower(word)]
	return ok
}

// IsPersonalPronoun reports whether word is a subjective or objective
// personal pronoun that cannot also be a possessive determiner
func IsPersonalPronoun(word string) bool {
	w := strings.ToLower(word)
	if IsDeterminer(w) {
		return false
	}
	_, subj := subjectToObject[w]
	_, obj := objectToSubject[w]
	return subj || obj
}

// ObjectCase returns the objective form of a subjective pronoun, or word unchanged
func ObjectCase(word string) string {
	if obj, ok := subjectToObject[strings.ToLower(word)]; ok {
		return obj
	}
	return word
}

// SubjectCase returns the subjective form of an objective pronoun, or word unchanged
func SubjectCase(word string) string {
	if subj, ok := objectToSubject[strings.ToLower(word)]; ok {
		return subj
	}
	return word
}

// RegularParticiple applies the regular suffixation rules: -e takes +d,
// consonant+y takes -y+ied, everything else +ed.
func RegularParticiple(base string) string {
	switch {
	case strings.HasSuffix(base, "e"):
		return base + "d"
	case endsConsonantY(base):
		return base[:len(base)-1] + "ied"
	default:
		return base + "ed"
	}
}

// ThirdPerson returns the third-person singular present form of base
func ThirdPerson(base string) string {
	switch base {
	case "be":
		return "is"
	case "have":
		return "has"
	}
	switch {
	case endsConsonantY(base):
		return base[:len(base)-1] + "ies"
	case strings.HasSuffix(base, "s"), strings.HasSuffix(base, "x"), strings.HasSuffix(base, "z"),
		strings.HasSuffix(base, "ch"), strings.HasSuffix(base, "sh"), strings.HasSuffix(base, "o"):
		return base + "es"
	default:
		return base + "s"
	}
}

func endsConsonantY(word string) bool {
	if len(word) < 2 || !strings.HasSuffix(word, "y") {
		return false
	}
	return !strings.ContainsRune("aeiou", rune(word[len(word)-2]))
}
