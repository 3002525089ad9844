package service

import "github.com/pawmemo/pawmemo-backend/internal/models"

// Personality quiz: ten fixed questions, four options each. The dominant
// option letter across the answers maps to one of four personality types.

type QuizQuestion struct {
	ID      int               `json:"id"`
	Text    string            `json:"text"`
	Options map[string]string `json:"options"`
}

const (
	PersonalityIntrovert   = "Quiet observer"
	PersonalityOutgoing    = "Outgoing companion"
	PersonalitySensitive   = "Sensitive soul"
	PersonalityIndependent = "Independent spirit"
	PersonalityUnknown     = "Unknown"
)

var personalityTypes = map[string]string{
	"A": PersonalityIntrovert,
	"B": PersonalityOutgoing,
	"C": PersonalitySensitive,
	"D": PersonalityIndependent,
}

var personalityDescriptions = map[string]string{
	PersonalityIntrovert:   "A thoughtful little one who liked to watch and take things in. Trust took time, but once given it was absolute.",
	PersonalityOutgoing:    "A born charmer, warm and eager, always ready to greet whoever walked through the door.",
	PersonalitySensitive:   "Finely tuned to every mood in the house, always nearby when comfort was needed.",
	PersonalityIndependent: "Kept their own rhythm and their own corners, yet their heart never wandered far from home.",
}

var quizQuestions = []QuizQuestion{
	{1, "When meeting a stranger, your pet would usually:", map[string]string{
		"A": "Hide and watch from a distance",
		"B": "Walk right up and say hello",
		"C": "Keep back but stay curious",
		"D": "Pay no attention at all",
	}},
	{2, "At playtime, your pet preferred:", map[string]string{
		"A": "Exploring on their own",
		"B": "Playing with you",
		"C": "Playing with other pets",
		"D": "Quietly watching",
	}},
	{3, "When you came home, your pet would:", map[string]string{
		"A": "Run around in excitement",
		"B": "Gently nuzzle you",
		"C": "Wag or perk up in welcome",
		"D": "Carry on with their own business",
	}},
	{4, "Faced with a new toy, your pet would:", map[string]string{
		"A": "Try it immediately",
		"B": "Watch first, then try",
		"C": "Wait for you to show them",
		"D": "Not be interested",
	}},
	{5, "When resting, your pet liked to:", map[string]string{
		"A": "Find a quiet corner",
		"B": "Curl up next to you",
		"C": "Stay where they could see you",
		"D": "Settle anywhere at all",
	}},
	{6, "On hearing a strange noise, your pet would:", map[string]string{
		"A": "Go on full alert",
		"B": "Curiously look for the source",
		"C": "Come to you for safety",
		"D": "Keep on resting",
	}},
	{7, "Around other pets, your pet was:", map[string]string{
		"A": "Happy to keep to themselves",
		"B": "The social one",
		"C": "Careful and slow to approach",
		"D": "Completely indifferent",
	}},
	{8, "During training, your pet:", map[string]string{
		"A": "Focused and learned fast",
		"B": "Needed praise and treats",
		"C": "Was easily distracted",
		"D": "Resisted the whole idea",
	}},
	{9, "When you were feeling down, your pet would:", map[string]string{
		"A": "Quietly keep you company",
		"B": "Actively try to comfort you",
		"C": "Try to distract you",
		"D": "Give you space",
	}},
	{10, "At mealtime, your pet:", map[string]string{
		"A": "Finished everything at once",
		"B": "Took their time savoring it",
		"C": "Sniffed first, then ate",
		"D": "Was a picky eater",
	}},
}

type PersonalityService struct{}

func NewPersonalityService() *PersonalityService {
	return &PersonalityService{}
}

func (s *PersonalityService) Questions() []QuizQuestion {
	return quizQuestions
}

// Score reduces a set of answers to a personality type. The most frequent
// option wins; ties break in option order A, B, C, D so scoring is
// deterministic.
func (s *PersonalityService) Score(answers []models.QuizAnswerInput) string {
	if len(answers) == 0 {
		return PersonalityUnknown
	}

	counts := map[string]int{}
	for _, a := range answers {
		counts[a.Answer]++
	}

	dominant := ""
	best := -1
	for _, option := range []string{"A", "B", "C", "D"} {
		if counts[option] > best {
			best = counts[option]
			dominant = option
		}
	}

	if t, ok := personalityTypes[dominant]; ok && best > 0 {
		return t
	}
	return PersonalityUnknown
}

func (s *PersonalityService) Description(personalityType string) string {
	if d, ok := personalityDescriptions[personalityType]; ok {
		return d
	}
	return "A one-of-a-kind personality."
}
