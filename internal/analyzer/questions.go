package analyzer

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minQuestions = 5
	maxQuestions = 8

	conceptQuestionLimit   = 3
	statementQuestionLimit = 4
	objectiveQuestionLimit = 2

	minFactSentenceChars = 30
	maxFactSentenceChars = 150
	maxOptionChars       = 100
	factSentencePool     = 15
)

var reSentenceEnd = regexp.MustCompile(`[.!?]+`)

// SynthesizeQuestions builds practice questions from extracted concepts,
// representative sentences and learning objectives, in that order. It
// always returns between five and eight questions with contiguous Order
// fields, and every question's correct answer is one of its options.
func SynthesizeQuestions(text string, concepts []Concept, objectives []string, titleHint, subjectLabel string) []Question {
	var questions []Question

	for i, concept := range concepts {
		if i == conceptQuestionLimit {
			break
		}
		if concept.Term == "" || concept.Definition == "" {
			continue
		}
		difficulty := DifficultyMedium
		if i == 0 {
			difficulty = DifficultyEasy
		}
		answer := truncate(concept.Definition, maxOptionChars)
		questions = append(questions, Question{
			Kind:   QuestionMultipleChoice,
			Prompt: fmt.Sprintf("What is %s?", concept.Term),
			Options: []string{
				answer,
				fmt.Sprintf("The opposite of %s", strings.ToLower(concept.Term)),
				"A type of unrelated concept",
				"None of the above",
			},
			CorrectOption: answer,
			Rationale:     fmt.Sprintf("%s %s", concept.Term, concept.Definition),
			Difficulty:    difficulty,
		})
	}

	for i, sentence := range factSentences(text) {
		if i == statementQuestionLimit {
			break
		}
		words := strings.Fields(sentence)
		if len(words) <= 5 {
			continue
		}
		answer := truncate(sentence, maxOptionChars)
		questions = append(questions, Question{
			Kind:   QuestionMultipleChoice,
			Prompt: "According to the lesson, which statement is correct?",
			Options: []string{
				answer,
				fmt.Sprintf("The opposite: %s is not %s", strings.Join(words[:3], " "), strings.Join(words[len(words)-3:], " ")),
				fmt.Sprintf("This topic is unrelated to %s", subjectLabel),
				"The lesson did not discuss this",
			},
			CorrectOption: answer,
			Rationale:     "This is directly stated in the lesson content.",
			Difficulty:    DifficultyMedium,
		})
	}

	for i, objective := range objectives {
		if i == objectiveQuestionLimit {
			break
		}
		questions = append(questions, Question{
			Kind:          QuestionTrueFalse,
			Prompt:        fmt.Sprintf("True or False: After this lesson, students should be able to %s", strings.ToLower(objective)),
			Options:       []string{"True", "False"},
			CorrectOption: "True",
			Rationale:     "This is one of the learning objectives for this lesson.",
			Difficulty:    DifficultyEasy,
		})
	}

	for len(questions) < minQuestions {
		questions = append(questions, Question{
			Kind:   QuestionMultipleChoice,
			Prompt: "What is the main topic of this lesson?",
			Options: []string{
				titleHint,
				"An unrelated topic",
				"Something not covered",
				"None of the above",
			},
			CorrectOption: titleHint,
			Rationale:     fmt.Sprintf("This lesson is about %s.", titleHint),
			Difficulty:    DifficultyEasy,
		})
	}

	if len(questions) > maxQuestions {
		questions = questions[:maxQuestions]
	}
	for i := range questions {
		questions[i].Order = i
	}
	return questions
}

// factSentences picks declarative sentences worth quizzing on: mid-length
// statements that do not open with an article.
func factSentences(text string) []string {
	var out []string
	for _, raw := range reSentenceEnd.Split(text, -1) {
		s := strings.TrimSpace(raw)
		if len(s) <= minFactSentenceChars || len(s) >= maxFactSentenceChars {
			continue
		}
		if strings.HasPrefix(s, "The") || strings.HasPrefix(s, "A ") || strings.HasPrefix(s, "An ") {
			continue
		}
		out = append(out, s)
		if len(out) == factSentencePool {
			break
		}
	}
	return out
}
