// Package bank holds the built-in question bank seeded at startup.
package bank

import "github.com/dmitrijs2005/quizweb/internal/server/models"

var builtin = []models.Question{
	{
		SeedKey:      "capital-of-france",
		Prompt:       "What is the capital of France?",
		Options:      []string{"Paris", "Rome", "London", "Berlin"},
		CorrectIndex: 1,
	},
	{
		SeedKey:      "red-planet",
		Prompt:       "Which planet is known as the Red Planet?",
		Options:      []string{"Venus", "Mars", "Jupiter", "Saturn"},
		CorrectIndex: 2,
	},
	{
		SeedKey:      "romeo-and-juliet-author",
		Prompt:       "Who wrote 'Romeo and Juliet'?",
		Options:      []string{"William Shakespeare", "Charles Dickens", "Jane Austen", "Mark Twain"},
		CorrectIndex: 1,
	},
	{
		SeedKey:      "largest-ocean",
		Prompt:       "What is the largest ocean on Earth?",
		Options:      []string{"Atlantic Ocean", "Indian Ocean", "Arctic Ocean", "Pacific Ocean"},
		CorrectIndex: 4,
	},
	{
		SeedKey:      "capital-of-japan",
		Prompt:       "What is the capital of Japan?",
		Options:      []string{"Tokyo", "Kyoto", "Osaka", "Nagoya"},
		CorrectIndex: 1,
	},
	{
		SeedKey:      "mona-lisa-painter",
		Prompt:       "Who painted the Mona Lisa?",
		Options:      []string{"Leonardo da Vinci", "Pablo Picasso", "Vincent van Gogh", "Michelangelo"},
		CorrectIndex: 1,
	},
	{
		SeedKey:      "guacamole-main-ingredient",
		Prompt:       "What is the main ingredient in guacamole?",
		Options:      []string{"Avocado", "Tomato", "Onion", "Garlic"},
		CorrectIndex: 1,
	},
}

// Builtin returns a fresh copy of the built-in bank; callers may modify it.
func Builtin() []*models.Question {
	out := make([]*models.Question, len(builtin))
	for i := range builtin {
		q := builtin[i]
		q.Options = append([]string(nil), builtin[i].Options...)
		out[i] = &q
	}
	return out
}
