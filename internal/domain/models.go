package domain

import "time"

// Dimension is one of the four binary personality axes.
type Dimension string

const (
	DimensionEI Dimension = "E/I"
	DimensionSN Dimension = "S/N"
	DimensionTF Dimension = "T/F"
	DimensionJP Dimension = "J/P"
)

// Dimensions lists the axes in type code order.
var Dimensions = []Dimension{DimensionEI, DimensionSN, DimensionTF, DimensionJP}

// Letters returns the letter chosen by an A answer and the letter chosen by a B answer.
func (d Dimension) Letters() (first, second string) {
	switch d {
	case DimensionEI:
		return "E", "I"
	case DimensionSN:
		return "S", "N"
	case DimensionTF:
		return "T", "F"
	case DimensionJP:
		return "J", "P"
	}
	return "", ""
}

// Choice is a submitted answer letter.
type Choice string

const (
	ChoiceA Choice = "A"
	ChoiceB Choice = "B"
)

// Valid reports whether c is one of the two recognised answers.
func (c Choice) Valid() bool {
	return c == ChoiceA || c == ChoiceB
}

// Question is a single forced-choice item tagged with the dimension it measures.
type Question struct {
	ID        int       `json:"id"`
	Dimension Dimension `json:"dimension"`
	Prompt    string    `json:"question"`
	OptionA   string    `json:"optionA"`
	OptionB   string    `json:"optionB"`
}

// AnswerSet maps question IDs to the submitted choice.
type AnswerSet map[int]Choice

// ScoreTally counts answers per letter.
type ScoreTally map[string]int

// NewScoreTally returns a tally with all eight letters present and zeroed.
func NewScoreTally() ScoreTally {
	tally := make(ScoreTally, 8)
	for _, d := range Dimensions {
		first, second := d.Letters()
		tally[first] = 0
		tally[second] = 0
	}
	return tally
}

// TypeCode is the resolved four-letter type, one letter per dimension.
type TypeCode string

// ResultRecord is the output of one scoring run, owned by the session until overwritten or cleared.
type ResultRecord struct {
	TypeCode TypeCode   `json:"typeCode"`
	Tally    ScoreTally `json:"scores"`
	Answers  AnswerSet  `json:"answers"`
	ScoredAt time.Time  `json:"scoredAt"`
}

// Result is the read view of a stored record.
type Result struct {
	ResultRecord
	Description string `json:"description"`
}

// TypeCount is an aggregate of archived results for one type code.
type TypeCount struct {
	TypeCode TypeCode `json:"typeCode"`
	Count    int      `json:"count"`
}
