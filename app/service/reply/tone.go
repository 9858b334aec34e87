package reply

import "strings"

type replacement struct {
	old string
	new string
}

// The tables are ordered association lists, not maps: replacements are
// applied as literal find-and-replace passes and earlier entries can
// consume text a later entry would otherwise match.
var formalReplacements = []replacement{
	{"Thanks!", "Thank you."},
	{"Got it", "Understood"},
	{"Sounds good", "That works well"},
	{"Hi there!", "Hello,"},
	{"Hey!", "Hello,"},
}

var casualReplacements = []replacement{
	{"Thank you.", "Thanks!"},
	{"Understood", "Got it!"},
	{"Hello,", "Hey!"},
}

// AdaptTone rewrites text for the requested tone. Professional, friendly
// and unrecognized tones are identity transforms.
func AdaptTone(text string, tone Tone) string {
	var table []replacement

	switch tone {
	case ToneFormal:
		table = formalReplacements
	case ToneCasual:
		table = casualReplacements
	default:
		return text
	}

	for _, r := range table {
		text = strings.ReplaceAll(text, r.old, r.new)
	}

	return text
}
