package domain

// Catalog is an ordered, read-only sequence of questions.
type Catalog []Question

// defaultCatalog is the reference questionnaire. The per-dimension counts (E/I 2, S/N 3, T/F 3, J/P 2)
// are part of the questionnaire and must not be rebalanced.
var defaultCatalog = Catalog{
	{
		ID:        1,
		Dimension: DimensionEI,
		Prompt:    "After a long, stressful week, what sounds most appealing to recharge yourself?",
		OptionA:   "Going out with friends, attending a party, or engaging in group activities",
		OptionB:   "Spending quiet time alone, reading, or doing solitary hobbies",
	},
	{
		ID:        2,
		Dimension: DimensionSN,
		Prompt:    "When learning something new, you prefer:",
		OptionA:   "Step-by-step instructions with concrete examples and practical applications",
		OptionB:   "Understanding the big picture first, then exploring possibilities and connections",
	},
	{
		ID:        3,
		Dimension: DimensionTF,
		Prompt:    "When making an important decision, you typically:",
		OptionA:   "Analyze the facts objectively and consider logical consequences",
		OptionB:   "Consider how it will affect people and align with your personal values",
	},
	{
		ID:        4,
		Dimension: DimensionJP,
		Prompt:    "Your ideal work environment would be:",
		OptionA:   "Structured with clear deadlines, organized systems, and predictable routines",
		OptionB:   "Flexible with room for spontaneity, multiple projects, and adaptable schedules",
	},
	{
		ID:        5,
		Dimension: DimensionEI,
		Prompt:    "In group discussions, you tend to:",
		OptionA:   "Think out loud, speak up frequently, and develop ideas through conversation",
		OptionB:   "Listen more, think before speaking, and prefer to contribute when you have something meaningful to say",
	},
	{
		ID:        6,
		Dimension: DimensionSN,
		Prompt:    "When facing a problem, you're more likely to:",
		OptionA:   "Focus on what has worked before and use proven, practical solutions",
		OptionB:   "Brainstorm innovative approaches and consider unconventional possibilities",
	},
	{
		ID:        7,
		Dimension: DimensionTF,
		Prompt:    "When there's disagreement in your team, you prioritize:",
		OptionA:   "Finding the most logical, fair solution based on objective criteria",
		OptionB:   "Ensuring everyone feels heard and maintaining group harmony",
	},
	{
		ID:        8,
		Dimension: DimensionJP,
		Prompt:    "For vacation planning, you prefer to:",
		OptionA:   "Create detailed itineraries with booked accommodations and planned activities",
		OptionB:   "Have a general destination in mind but leave room for spontaneous discoveries",
	},
	{
		ID:        9,
		Dimension: DimensionSN,
		Prompt:    "You learn best when information is presented:",
		OptionA:   "With specific facts, real examples, and hands-on experience",
		OptionB:   "Through concepts, theories, and exploring underlying patterns",
	},
	{
		ID:        10,
		Dimension: DimensionTF,
		Prompt:    "When someone comes to you with a personal problem, your instinct is to:",
		OptionA:   "Help them analyze the situation logically and suggest practical solutions",
		OptionB:   "Listen empathetically and provide emotional support and understanding",
	},
}

// DefaultCatalog returns a copy of the reference questionnaire.
func DefaultCatalog() Catalog {
	return Catalog(defaultCatalog.Questions())
}

// Questions returns a copy of the catalog so callers cannot mutate the shared data.
func (c Catalog) Questions() []Question {
	out := make([]Question, len(c))
	copy(out, c)
	return out
}

// Complete reports whether answers holds a recognised choice for every catalog question.
func (c Catalog) Complete(answers AnswerSet) bool {
	for _, q := range c {
		if !answers[q.ID].Valid() {
			return false
		}
	}
	return true
}

// DimensionCounts returns how many questions measure each dimension.
func (c Catalog) DimensionCounts() map[Dimension]int {
	counts := make(map[Dimension]int, len(Dimensions))
	for _, q := range c {
		counts[q.Dimension]++
	}
	return counts
}
