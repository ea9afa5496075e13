package domain

import "time"

// Seed data is loaded for any collection that has never been persisted.

func SeedSummaries() []Summary {
	return []Summary{
		{
			ID:           "1",
			Title:        "Introduction to Machine Learning",
			OriginalText: "Machine learning is a field of study that gives computers the ability to learn without being explicitly programmed. It is a branch of artificial intelligence based on the idea that systems can learn from data, identify patterns, and make decisions with minimal human intervention. The process of learning begins with observations or data, such as examples, direct experience, or instruction, in order to look for patterns in data and make better decisions in the future based on the examples that we provide. The primary aim is to allow the computers to learn automatically without human intervention or assistance and adjust actions accordingly.",
			SummaryText:  "Machine learning enables computers to learn without explicit programming. As a branch of AI, it allows systems to learn from data, identify patterns, and make decisions with minimal human input. Learning starts with observations or data to find patterns and improve future decisions, with the goal of enabling automatic learning without human intervention.",
			Timestamp:    time.Date(2025, 4, 10, 14, 30, 0, 0, time.UTC),
			Length:       LengthMedium,
		},
		{
			ID:           "2",
			Title:        "Climate Change Effects",
			OriginalText: "Climate change refers to long-term shifts in temperatures and weather patterns. These shifts may be natural, such as through variations in the solar cycle. But since the 1800s, human activities have been the main driver of climate change, primarily due to burning fossil fuels like coal, oil and gas. Burning fossil fuels generates greenhouse gas emissions that act like a blanket wrapped around the Earth, trapping the sun's heat and raising temperatures. Examples of greenhouse gas emissions that are causing climate change include carbon dioxide and methane. These come from using gasoline for driving a car or coal for heating a building, for example. Clearing land and forests can also release carbon dioxide. Landfills for garbage are a major source of methane emissions. Energy, industry, transport, buildings, agriculture and land use are among the main emitters.",
			SummaryText:  "Climate change involves long-term shifts in temperatures and weather patterns. While natural causes exist, human activities, especially burning fossil fuels, have been the primary driver since the 1800s. These activities produce greenhouse gases like carbon dioxide and methane that trap heat and raise Earth's temperature. Major emission sources include energy, industry, transport, buildings, agriculture, land use, and landfills.",
			Timestamp:    time.Date(2025, 4, 12, 9, 15, 0, 0, time.UTC),
			Length:       LengthShort,
		},
	}
}

func SeedQuizzes() []Quiz {
	return []Quiz{
		{
			ID:       "1",
			Title:    "Machine Learning Basics Quiz",
			SourceID: "1",
			Questions: []QuizQuestion{
				{
					ID:       "q1-1",
					Question: "What is the primary aim of machine learning?",
					Type:     MultipleChoice,
					Options: []string{
						"To replace human workers",
						"To allow computers to learn automatically without human intervention",
						"To create perfect algorithms",
						"To generate random patterns",
					},
					CorrectAnswer: IndexAnswer(1),
					Explanation:   "Machine learning aims to allow computers to learn automatically and adjust actions accordingly without human intervention.",
				},
				{
					ID:            "q1-2",
					Question:      "Machine learning is a branch of:",
					Type:          MultipleChoice,
					Options:       []string{"Psychology", "Biology", "Artificial Intelligence", "Neuroscience"},
					CorrectAnswer: IndexAnswer(2),
					Explanation:   "Machine learning is a branch of artificial intelligence that focuses on systems learning from data.",
				},
				{
					ID:            "q1-3",
					Question:      "Machine learning requires explicit programming for each task.",
					Type:          TrueFalse,
					Options:       []string{"True", "False"},
					CorrectAnswer: IndexAnswer(1),
					Explanation:   "False. The key characteristic of machine learning is that it gives computers the ability to learn without being explicitly programmed.",
				},
				{
					ID:            "q1-4",
					Question:      "What does the process of learning begin with in machine learning?",
					Type:          MultipleChoice,
					Options:       []string{"Computer programming", "Hardware installation", "Observations or data", "Software design"},
					CorrectAnswer: IndexAnswer(2),
					Explanation:   "The process of learning in machine learning begins with observations or data, from which patterns can be identified.",
				},
				{
					ID:            "q1-5",
					Question:      "Explain how machine learning systems improve over time.",
					Type:          ShortAnswer,
					CorrectAnswer: TextAnswer("By analyzing patterns in data and adjusting their models based on new information and feedback."),
					Explanation:   "Machine learning systems improve by continuously analyzing patterns in data, learning from past experiences, and adjusting their models to make better predictions or decisions based on new information and feedback.",
				},
			},
			Timestamp:  time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC),
			Difficulty: DifficultyMedium,
		},
		{
			ID:       "2",
			Title:    "Climate Change Quiz",
			SourceID: "2",
			Questions: []QuizQuestion{
				{
					ID:       "q2-1",
					Question: "What has been the main driver of climate change since the 1800s?",
					Type:     MultipleChoice,
					Options: []string{
						"Natural variations in the solar cycle",
						"Volcanic eruptions",
						"Human activities, primarily burning fossil fuels",
						"Changes in Earth's orbit",
					},
					CorrectAnswer: IndexAnswer(2),
					Explanation:   "Since the 1800s, human activities, primarily burning fossil fuels like coal, oil, and gas, have been the main driver of climate change.",
				},
				{
					ID:            "q2-2",
					Question:      "Which of the following are examples of greenhouse gases causing climate change?",
					Type:          MultipleChoice,
					Options:       []string{"Oxygen and nitrogen", "Hydrogen and helium", "Carbon dioxide and methane", "Neon and argon"},
					CorrectAnswer: IndexAnswer(2),
					Explanation:   "Carbon dioxide and methane are examples of greenhouse gases that are causing climate change.",
				},
				{
					ID:            "q2-3",
					Question:      "Climate change only refers to global warming.",
					Type:          TrueFalse,
					Options:       []string{"True", "False"},
					CorrectAnswer: IndexAnswer(1),
					Explanation:   "False. Climate change refers to long-term shifts in temperatures and weather patterns, which includes but is not limited to global warming.",
				},
			},
			Timestamp:  time.Date(2025, 4, 12, 10, 0, 0, 0, time.UTC),
			Difficulty: DifficultyEasy,
		},
	}
}

func SeedAttempts() []QuizAttempt {
	return []QuizAttempt{
		{
			ID:     "a1",
			QuizID: "1",
			Answers: map[string]Answer{
				"q1-1": IndexAnswer(1),
				"q1-2": IndexAnswer(2),
				"q1-3": IndexAnswer(1),
				"q1-4": IndexAnswer(2),
				"q1-5": TextAnswer("By learning from data and improving predictions over time"),
			},
			Score:     80,
			Timestamp: time.Date(2025, 4, 10, 16, 30, 0, 0, time.UTC),
			Completed: true,
		},
	}
}
