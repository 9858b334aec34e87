package reply

// Canned phrases by intent. Intents without an entry (answer, suggestion,
// general) resolve through the acknowledge set when templates are required.
var quickReplyTemplates = map[Intent][]string{
	IntentAcknowledge: {
		"Got it, thanks!",
		"Understood",
		"Sounds good",
		"Noted, thank you",
	},
	IntentAgree: {
		"I agree",
		"That makes sense",
		"Absolutely",
		"Good point",
	},
	IntentDisagree: {
		"I have a different view",
		"Let me share another perspective",
		"I'm not sure about that",
	},
	IntentThanks: {
		"Thank you!",
		"Thanks for your help",
		"Much appreciated",
		"Thanks!",
	},
	IntentGreeting: {
		"Hi there!",
		"Hello!",
		"Hey!",
		"Good to hear from you",
	},
	IntentFarewell: {
		"Talk soon!",
		"Have a great day!",
		"Take care",
		"Bye for now",
	},
	IntentQuestion: {
		"Could you clarify?",
		"What do you think?",
		"Any thoughts on this?",
	},
}

// TemplatesFor returns the canned phrases for an intent, or nil when the
// intent has no template set of its own.
func TemplatesFor(intent Intent) []string {
	return quickReplyTemplates[intent]
}

// templatesOrFallback never returns an empty list.
func templatesOrFallback(intent Intent) []string {
	if templates := quickReplyTemplates[intent]; len(templates) > 0 {
		return templates
	}

	return quickReplyTemplates[IntentAcknowledge]
}
