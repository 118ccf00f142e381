package domain

// FallbackDescription is returned for codes missing from the registry.
const FallbackDescription = "Type description not available."

// typeDescriptions maps every canonical type code to its description.
var typeDescriptions = map[TypeCode]string{
	"ESTJ": "The Executive - Practical, fact-minded, and reliable. Natural leaders who organize people and resources.",
	"ENTJ": "The Commander - Bold, imaginative, and strong-willed leaders who find a way or make one.",
	"ESFJ": "The Consul - Warm-hearted, conscientious, and cooperative. Want harmony in their environment.",
	"ENFJ": "The Protagonist - Charismatic and inspiring leaders, able to mesmerize listeners.",
	"ISTJ": "The Logistician - Practical and fact-minded, reliable and responsible.",
	"INTJ": "The Architect - Imaginative and strategic thinkers, with a plan for everything.",
	"ISFJ": "The Protector - Warm-hearted and dedicated, always ready to protect loved ones.",
	"INFJ": "The Advocate - Creative and insightful, inspired and independent.",
	"ESTP": "The Entrepreneur - Smart, energetic and perceptive, truly enjoy living on the edge.",
	"ENTP": "The Debater - Smart and curious thinkers who cannot resist an intellectual challenge.",
	"ESFP": "The Entertainer - Spontaneous, energetic and enthusiastic people - life is never boring.",
	"ENFP": "The Campaigner - Enthusiastic, creative and sociable free spirits.",
	"ISTP": "The Virtuoso - Bold and practical experimenters, masters of all kinds of tools.",
	"INTP": "The Thinker - Innovative inventors with an unquenchable thirst for knowledge.",
	"ISFP": "The Adventurer - Flexible and charming artists, always ready to explore new possibilities.",
	"INFP": "The Mediator - Poetic, kind and altruistic people, always eager to help good causes.",
}

// Describe looks up the description for code, falling back to FallbackDescription.
func Describe(code TypeCode) string {
	if desc, ok := typeDescriptions[code]; ok {
		return desc
	}
	return FallbackDescription
}

// TypeDescriptions returns a copy of the registry.
func TypeDescriptions() map[TypeCode]string {
	out := make(map[TypeCode]string, len(typeDescriptions))
	for code, desc := range typeDescriptions {
		out[code] = desc
	}
	return out
}
