package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(choice Choice) AnswerSet {
	answers := make(AnswerSet, len(defaultCatalog))
	for _, q := range defaultCatalog {
		answers[q.ID] = choice
	}
	return answers
}

func TestScoreAllA(t *testing.T) {
	code, tally := Score(uniform(ChoiceA))

	assert.Equal(t, TypeCode("ESTJ"), code)
	assert.Equal(t, ScoreTally{"E": 2, "I": 0, "S": 3, "N": 0, "T": 3, "F": 0, "J": 2, "P": 0}, tally)
}

func TestScoreAllB(t *testing.T) {
	code, tally := Score(uniform(ChoiceB))

	assert.Equal(t, TypeCode("INFP"), code)
	assert.Equal(t, ScoreTally{"E": 0, "I": 2, "S": 0, "N": 3, "T": 0, "F": 3, "J": 0, "P": 2}, tally)
}

func TestScorePartialAnswersLeaveTalliesAtZero(t *testing.T) {
	code, tally := Score(AnswerSet{1: ChoiceA, 2: ChoiceB})

	assert.Equal(t, ScoreTally{"E": 1, "I": 0, "S": 0, "N": 1, "T": 0, "F": 0, "J": 0, "P": 0}, tally)
	// E wins outright, N wins outright, T and J win the 0-0 ties.
	assert.Equal(t, TypeCode("ENTJ"), code)
}

func TestScoreTiesFavourFirstLetter(t *testing.T) {
	// E/I: q1=A, q5=B tie. J/P: q4=B, q8=A tie.
	answers := uniform(ChoiceB)
	answers[1] = ChoiceA
	answers[8] = ChoiceA

	code, tally := Score(answers)

	assert.Equal(t, 1, tally["E"])
	assert.Equal(t, 1, tally["I"])
	assert.Equal(t, 1, tally["J"])
	assert.Equal(t, 1, tally["P"])
	assert.Equal(t, TypeCode("ENFJ"), code)
}

func TestScoreSkipsUnrecognisedChoices(t *testing.T) {
	answers := uniform(ChoiceB)
	answers[1] = "C"
	answers[5] = "a"

	code, tally := Score(answers)

	assert.Zero(t, tally["E"])
	assert.Zero(t, tally["I"])
	assert.Equal(t, TypeCode("ENFP"), code)
}

func TestScoreIgnoresKeysOutsideCatalog(t *testing.T) {
	answers := uniform(ChoiceA)
	answers[11] = ChoiceB
	answers[0] = ChoiceB

	code, tally := Score(answers)

	assert.Equal(t, TypeCode("ESTJ"), code)
	assert.Len(t, tally, 8)
}

func TestScoreIsDeterministic(t *testing.T) {
	answers := AnswerSet{1: ChoiceB, 2: ChoiceA, 3: ChoiceB, 4: ChoiceB, 5: ChoiceB, 6: ChoiceB, 7: ChoiceA, 8: ChoiceB, 9: ChoiceB, 10: ChoiceB}

	code1, tally1 := Score(answers)
	code2, tally2 := Score(answers)

	assert.Equal(t, code1, code2)
	assert.Equal(t, tally1, tally2)
	assert.Equal(t, TypeCode("INFP"), code1)
}

func TestScoreProducesOneLetterPerDimension(t *testing.T) {
	ids := make([]int, 0, len(defaultCatalog))
	for _, q := range defaultCatalog {
		ids = append(ids, q.ID)
	}

	// Enumerate every complete answer set.
	for mask := 0; mask < 1<<len(ids); mask++ {
		answers := make(AnswerSet, len(ids))
		for i, id := range ids {
			if mask&(1<<i) != 0 {
				answers[id] = ChoiceB
			} else {
				answers[id] = ChoiceA
			}
		}

		code, tally := Score(answers)
		require.Len(t, code, 4)

		counts := defaultCatalog.DimensionCounts()
		for i, d := range Dimensions {
			first, second := d.Letters()
			require.Contains(t, []string{first, second}, string(code[i]))
			require.Equal(t, counts[d], tally[first]+tally[second])
		}
	}
}
