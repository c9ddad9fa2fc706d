package rules

// Homophone describes a word that sounds like other words
type Homophone struct {
	Meanings   []string `yaml:"meanings"`
	Examples   []string `yaml:"examples"`
	SoundsLike []string `yaml:"sounds_like,omitempty"`
}

// PrimaryMeaning returns the first listed meaning
func (h Homophone) PrimaryMeaning() string {
	if len(h.Meanings) == 0 {
		return ""
	}
	return h.Meanings[0]
}

// FirstExample returns the canonical usage example
func (h Homophone) FirstExample() string {
	if len(h.Examples) == 0 {
		return ""
	}
	return h.Examples[0]
}

func defaultHomophones() map[string]Homophone {
	return map[string]Homophone{
		"see": {
			Meanings:   []string{"perceive with eyes", "understand"},
			Examples:   []string{"I can see the mountain", "Do you see what I mean?"},
			SoundsLike: []string{"sea"},
		},
		"sea": {
			Meanings:   []string{"body of saltwater", "ocean"},
			Examples:   []string{"We sailed across the sea"},
			SoundsLike: []string{"see"},
		},
		"there": {
			Meanings:   []string{"at that location", "in that direction"},
			Examples:   []string{"Let's go there"},
			SoundsLike: []string{"their", "they're"},
		},
		"their": {
			Meanings:   []string{"possessive - belongs to them"},
			Examples:   []string{"That's their house"},
			SoundsLike: []string{"there", "they're"},
		},
		"they're": {
			Meanings:   []string{"they are (contraction)"},
			Examples:   []string{"They're going to the party"},
			SoundsLike: []string{"there", "their"},
		},
		"to": {
			Meanings:   []string{"preposition of direction", "used with infinitive verbs"},
			Examples:   []string{"I'm going to school", "I like to run"},
			SoundsLike: []string{"too", "two"},
		},
		"too": {
			Meanings:   []string{"also", "excessive amount"},
			Examples:   []string{"Can I come too?", "That's too much"},
			SoundsLike: []string{"to", "two"},
		},
		"two": {
			Meanings:   []string{"number 2"},
			Examples:   []string{"I have two cats"},
			SoundsLike: []string{"to", "too"},
		},
		"hear": {
			Meanings:   []string{"perceive with ears", "listen"},
			Examples:   []string{"Did you hear that sound?"},
			SoundsLike: []string{"here"},
		},
		"here": {
			Meanings:   []string{"at this location"},
			Examples:   []string{"Come here"},
			SoundsLike: []string{"hear"},
		},
		"no": {
			Meanings:   []string{"negative", "absence"},
			Examples:   []string{"No, I don't agree"},
			SoundsLike: []string{"know"},
		},
		"know": {
			Meanings:   []string{"be aware of", "understand"},
			Examples:   []string{"I know the answer"},
			SoundsLike: []string{"no"},
		},
		"piece": {
			Meanings:   []string{"a part", "portion"},
			Examples:   []string{"Can I have a piece of cake?"},
			SoundsLike: []string{"peace"},
		},
		"peace": {
			Meanings:   []string{"absence of conflict", "calm"},
			Examples:   []string{"World peace is important"},
			SoundsLike: []string{"piece"},
		},
		"right": {
			Meanings:   []string{"correct", "direction", "privilege"},
			Examples:   []string{"That's the right answer", "Turn right"},
			SoundsLike: []string{"write"},
		},
		"write": {
			Meanings:   []string{"compose text", "mark with pen"},
			Examples:   []string{"Write a letter"},
			SoundsLike: []string{"right"},
		},
		"one": {
			Meanings:   []string{"number 1", "a single item"},
			Examples:   []string{"I have one apple"},
			SoundsLike: []string{"won"},
		},
		"won": {
			Meanings:   []string{"past tense of win"},
			Examples:   []string{"She won the race"},
			SoundsLike: []string{"one"},
		},
	}
}

func defaultVaguePronouns() []string {
	return []string{"this", "that", "it", "they", "these", "those", "them", "which"}
}

// Multi-word entries are matched as consecutive tokens.
func defaultVagueWords() []string {
	return []string{
		"something",
		"things",
		"stuff",
		"somehow",
		"anyway",
		"somewhere",
		"someone",
		"whatever",
		"etc",
		"and so on",
	}
}
