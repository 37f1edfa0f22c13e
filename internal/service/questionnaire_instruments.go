package service

import "github.com/1SadFox/psyco/internal/domain"

// reverseScore maps a raw Likert value to its reverse-coded value on a scale with the
// given number of points. Out of range values are clamped.
func reverseScore(raw, points int) int {
	if points < 2 {
		return raw
	}
	if raw < 1 {
		raw = 1
	}
	if raw > points {
		raw = points
	}
	return (points + 1) - raw
}

// likertOptions numbers labels 1..n, or n..1 for reverse-scored items.
func likertOptions(reversed bool, labels ...string) []domain.Option {
	opts := make([]domain.Option, 0, len(labels))
	for i, label := range labels {
		value := i + 1
		if reversed {
			value = reverseScore(value, len(labels))
		}
		opts = append(opts, domain.Option{Value: value, Label: label})
	}
	return opts
}

var staiLabels = []string{"Not at all", "Somewhat", "Moderately so", "Very much so"}

func staiItem(id int, prompt string, reversed bool) domain.Question {
	return domain.Question{
		ID:       id,
		Prompt:   prompt,
		Options:  likertOptions(reversed, staiLabels...),
		Reversed: reversed,
	}
}

func bdiItem(id int, prompt string, statements ...string) domain.Question {
	opts := make([]domain.Option, 0, len(statements))
	for i, s := range statements {
		opts = append(opts, domain.Option{Value: i, Label: s})
	}
	return domain.Question{ID: id, Prompt: prompt, Options: opts}
}

func bundledQuestionnaires() []domain.Questionnaire {
	return []domain.Questionnaire{
		{
			ID:                "bdi",
			Title:             "Beck Depression Inventory (BDI)",
			Description:       "Screens for the presence and severity of depressive symptoms.",
			EstimatedDuration: "10-15 minutes",
			Category:          domain.CategoryDepression,
			Questions: []domain.Question{
				bdiItem(1, "How would you describe your mood?",
					"I do not feel sad.",
					"I feel sad or down.",
					"I am sad all the time and can't snap out of it.",
					"I am so sad and unhappy that I can't stand it.",
				),
				bdiItem(2, "How do you see the future?",
					"I am not particularly discouraged about the future.",
					"I feel discouraged about the future.",
					"I feel I have nothing to look forward to.",
					"I feel the future is hopeless and that things cannot improve.",
				),
				bdiItem(3, "How do you rate your life as a whole?",
					"I do not feel like a failure.",
					"I feel I have failed more than the average person.",
					"As I look back on my life, all I can see is a lot of failures.",
					"I feel I am a complete failure as a person.",
				),
				bdiItem(4, "Do you still enjoy the things you used to?",
					"I get as much satisfaction out of things as I used to.",
					"I don't enjoy things the way I used to.",
					"I don't get real satisfaction out of anything anymore.",
					"I am dissatisfied or bored with everything.",
				),
				bdiItem(5, "Do you feel guilty?",
					"I don't feel particularly guilty.",
					"I feel guilty about many things.",
					"I feel quite guilty most of the time.",
					"I feel guilty all of the time.",
				),
			},
			Bands: []domain.InterpretationBand{
				{Min: 0, Max: 9, Label: "No depressive symptoms", Recommendations: []string{
					"Keep up a healthy lifestyle",
					"Exercise regularly",
					"Practice stress management techniques",
				}},
				{Min: 10, Max: 18, Label: "Mild depression", Recommendations: []string{
					"Practice relaxation techniques",
					"Stay socially connected",
					"Consider talking to a psychologist",
				}},
				{Min: 19, Max: 29, Label: "Moderate depression", Recommendations: []string{
					"See a psychologist or psychotherapist",
					"Follow the specialist's recommendations consistently",
					"Keep a regular daily routine",
				}},
				{Min: 30, Max: 63, Label: "Severe depression", Recommendations: []string{
					"Contact a psychiatrist as soon as possible",
					"Follow the prescribed treatment",
					"Stay in touch with people close to you",
				}},
			},
		},
		{
			ID:                "stai",
			Title:             "Spielberger State-Trait Anxiety Inventory (STAI)",
			Description:       "Measures the level of situational and personal anxiety.",
			EstimatedDuration: "10-15 minutes",
			Category:          domain.CategoryAnxiety,
			Questions: []domain.Question{
				staiItem(1, "I feel calm", true),
				staiItem(2, "I feel secure", true),
				staiItem(3, "I am tense", false),
				staiItem(4, "I feel regretful", false),
				staiItem(5, "I feel at ease", true),
			},
			Bands: []domain.InterpretationBand{
				{Min: 0, Max: 30, Label: "Low anxiety", Recommendations: []string{
					"Keep up a healthy lifestyle",
					"Use relaxation methods to stay balanced",
				}},
				{Min: 31, Max: 44, Label: "Moderate anxiety", Recommendations: []string{
					"Notice the situations that make you anxious",
					"Practice breathing exercises",
					"Consider consulting a specialist",
				}},
				{Min: 45, Max: 80, Label: "High anxiety", Recommendations: []string{
					"See a psychologist or psychotherapist",
					"Learn anxiety management techniques",
					"Watch your sleep and rest routine",
				}},
			},
		},
	}
}
