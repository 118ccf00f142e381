package domain

// Score tallies answers against the catalog and resolves the type code.
// Answers other than A or B, and questions without an answer, count towards neither letter.
// On a tie the first letter of the pair (E, S, T, J) wins.
func (c Catalog) Score(answers AnswerSet) (TypeCode, ScoreTally) {
	tally := NewScoreTally()
	for _, q := range c {
		first, second := q.Dimension.Letters()
		switch answers[q.ID] {
		case ChoiceA:
			tally[first]++
		case ChoiceB:
			tally[second]++
		}
	}

	code := make([]byte, 0, len(Dimensions))
	for _, d := range Dimensions {
		first, second := d.Letters()
		if tally[first] >= tally[second] {
			code = append(code, first...)
		} else {
			code = append(code, second...)
		}
	}
	return TypeCode(code), tally
}

// Score scores answers against the reference catalog.
func Score(answers AnswerSet) (TypeCode, ScoreTally) {
	return defaultCatalog.Score(answers)
}
