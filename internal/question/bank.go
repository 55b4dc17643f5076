package question

// sampleBank holds hand-verified questions served whenever the model path is
// unavailable or comes up short. It is never mutated.
var sampleBank = map[Difficulty][]Question{
	DifficultyEasy: {
		{
			Text:          "What is the capital city of France?",
			Options:       []string{"Paris", "London", "Berlin", "Madrid"},
			CorrectOption: "Paris",
			TimeLimit:     15,
			Difficulty:    DifficultyEasy,
		},
		{
			Text:          "How many legs does a spider have?",
			Options:       []string{"6", "8", "10", "12"},
			CorrectOption: "8",
			TimeLimit:     15,
			Difficulty:    DifficultyEasy,
		},
		{
			Text:          "Which planet is known as the Red Planet?",
			Options:       []string{"Venus", "Jupiter", "Mars", "Saturn"},
			CorrectOption: "Mars",
			TimeLimit:     15,
			Difficulty:    DifficultyEasy,
		},
		{
			Text:          "What color do you get by mixing blue and yellow?",
			Options:       []string{"Purple", "Green", "Orange", "Brown"},
			CorrectOption: "Green",
			TimeLimit:     15,
			Difficulty:    DifficultyEasy,
		},
		{
			Text:          "Which animal is known as the King of the Jungle?",
			Options:       []string{"Tiger", "Elephant", "Lion", "Gorilla"},
			CorrectOption: "Lion",
			TimeLimit:     15,
			Difficulty:    DifficultyEasy,
		},
	},
	DifficultyMedium: {
		{
			Text:          "Who painted the Mona Lisa?",
			Options:       []string{"Vincent van Gogh", "Leonardo da Vinci", "Pablo Picasso", "Claude Monet"},
			CorrectOption: "Leonardo da Vinci",
			TimeLimit:     25,
			Difficulty:    DifficultyMedium,
		},
		{
			Text:          "What is the chemical symbol for gold?",
			Options:       []string{"Go", "Gd", "Au", "Ag"},
			CorrectOption: "Au",
			TimeLimit:     25,
			Difficulty:    DifficultyMedium,
		},
		{
			Text:          "In which year did the Berlin Wall fall?",
			Options:       []string{"1987", "1989", "1991", "1993"},
			CorrectOption: "1989",
			TimeLimit:     25,
			Difficulty:    DifficultyMedium,
		},
		{
			Text:          "What is the largest ocean on Earth?",
			Options:       []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean", "Pacific Ocean"},
			CorrectOption: "Pacific Ocean",
			TimeLimit:     25,
			Difficulty:    DifficultyMedium,
		},
		{
			Text:          "How many bones are in the adult human body?",
			Options:       []string{"186", "206", "226", "246"},
			CorrectOption: "206",
			TimeLimit:     25,
			Difficulty:    DifficultyMedium,
		},
	},
	DifficultyHard: {
		{
			Text:          "What is the smallest prime number greater than 100?",
			Options:       []string{"101", "103", "107", "109"},
			CorrectOption: "101",
			TimeLimit:     35,
			Difficulty:    DifficultyHard,
		},
		{
			Text:          "Which element has the atomic number 74?",
			Options:       []string{"Tungsten", "Tantalum", "Rhenium", "Osmium"},
			CorrectOption: "Tungsten",
			TimeLimit:     35,
			Difficulty:    DifficultyHard,
		},
		{
			Text:          "Who wrote the novel 'One Hundred Years of Solitude'?",
			Options:       []string{"Jorge Luis Borges", "Gabriel Garcia Marquez", "Mario Vargas Llosa", "Isabel Allende"},
			CorrectOption: "Gabriel Garcia Marquez",
			TimeLimit:     35,
			Difficulty:    DifficultyHard,
		},
		{
			Text:          "In which year was the Treaty of Westphalia signed?",
			Options:       []string{"1618", "1648", "1683", "1713"},
			CorrectOption: "1648",
			TimeLimit:     35,
			Difficulty:    DifficultyHard,
		},
		{
			Text:          "What is the name of the deepest known point in Earth's oceans?",
			Options:       []string{"Tonga Trench", "Puerto Rico Trench", "Challenger Deep", "Java Trench"},
			CorrectOption: "Challenger Deep",
			TimeLimit:     35,
			Difficulty:    DifficultyHard,
		},
	},
}

// SampleQuestions returns a copy of the bank for a tier. Unknown tiers get
// the medium set.
func SampleQuestions(d Difficulty) []Question {
	bank, ok := sampleBank[d]
	if !ok {
		bank = sampleBank[DifficultyMedium]
	}
	out := make([]Question, len(bank))
	for i, q := range bank {
		out[i] = cloneQuestion(q)
	}
	return out
}

// SliceOrPad returns the first n entries of bank, cycling through it in order
// when n exceeds its length.
func SliceOrPad(bank []Question, n int) []Question {
	if n <= 0 || len(bank) == 0 {
		return []Question{}
	}
	out := make([]Question, n)
	for i := range out {
		out[i] = cloneQuestion(bank[i%len(bank)])
	}
	return out
}

// SampleResult builds a bank-only result of exactly count questions.
func SampleResult(d Difficulty, count int, reason string) GenerationResult {
	return GenerationResult{
		Questions:      SliceOrPad(SampleQuestions(d), count),
		AIGenerated:    false,
		FallbackReason: reason,
	}
}

func cloneQuestion(q Question) Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
