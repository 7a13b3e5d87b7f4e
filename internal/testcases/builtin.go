package testcases

// Builtin returns the catalog shipped with promptlab.
func Builtin() *Catalog {
	c, err := NewCatalog(builtinCases)
	if err != nil {
		panic(err)
	}
	return c
}

var builtinCases = []TestCase{
	{
		Key:          "test1",
		TemplateType: "oop_explanation",
		Label:        "🧩 OOP Concepts",
		Description:  "Explain programming concepts clearly",
		Aspects:      []string{"clarity", "simplicity", "understandability", "use of examples", "humor"},
		Example:      "Explain the concept of inheritance in object-oriented programming.",
		Templates: Templates{
			System: "You are a programming mentor who explains concepts with clarity and enthusiasm.",
			User:   "{input}",
		},
	},
	{
		Key:          "test2",
		TemplateType: "paragraph_summary",
		Label:        "📝 Quick Summary",
		Description:  "Condense text while keeping key points",
		Aspects:      []string{"conciseness", "accuracy", "key point retention", "clarity"},
		Example: "The Renaissance was a transformative period in European history, spanning from the 14th to the 17th centuries. " +
			"It marked a rebirth of classical learning and wisdom after the Middle Ages. " +
			"The movement began in Florence, Italy, and spread throughout Europe, revolutionizing art, architecture, politics, science and literature. " +
			"Key figures like Leonardo da Vinci and Michelangelo emerged, exemplifying the period's ideal of the \"Renaissance Man\" - someone who excelled in multiple disciplines. " +
			"The invention of the printing press by Johannes Gutenberg around 1440 helped spread Renaissance ideas by making books more accessible to the general public. " +
			"This period also saw significant developments in scientific thinking, with scholars beginning to question traditional authorities and rely more on empirical observation.",
		Templates: Templates{
			System: "You are a skilled summarizer who captures key points concisely.",
			User:   "Please summarize this text: {input}",
		},
	},
	{
		Key:          "test3",
		TemplateType: "imaginative_story",
		Label:        "✨ Creative Tales",
		Description:  "Generate engaging stories",
		Aspects:      []string{"creativity", "structure", "engagement", "humor", "uniqueness"},
		Example:      "Write a short story about a robot finding friendship in an unexpected place.",
		Templates: Templates{
			System: "You are a creative storyteller who crafts hilarious, quirky, engaging and imaginative tales.",
			User:   "Create a story about: {input}",
		},
	},
	{
		Key:          "test4",
		TemplateType: "math_problem",
		Label:        "🔢 Math Solver",
		Description:  "Break down math problems step by step",
		Aspects:      []string{"step-by-step explanation", "mathematical accuracy", "clarity", "simplicity"},
		Example:      "If a store sells apples in packs of 4 and oranges in packs of 3, how many packs of each do I need to buy to get exactly 12 apples and 9 oranges?",
		Templates: Templates{
			System: "You are a math tutor who explains solutions step by step with clarity.",
			User:   "Solve this problem: {input}",
		},
	},
	{
		Key:          "test5",
		TemplateType: "tone_rewrite",
		Label:        "🎭 Style Shift",
		Description:  "Rewrite text in different tones",
		Aspects:      []string{"tone accuracy", "meaning preservation", "professionalism", "clarity"},
		Example: "Hey boss! 😅 Just wanted to give u a heads up that the client meeting from this morning went AMAZING! " +
			"The client loved our pitch & they're super excited about moving forward!! " +
			"But they need the final proposal docs asap - like by EOD if possible?? Can u help me prioritize this?? Thx!!",
		Templates: Templates{
			System: "You are a writing expert who can adapt text to different tones while preserving meaning.",
			User:   "Rewrite this professionally: {input}",
		},
	},
}
