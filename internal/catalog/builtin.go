package catalog

import "qr-quiz-service/internal/domain"

// Builtin returns the four quizzes printed on the event QR posters.
func Builtin() []domain.Quiz {
	return []domain.Quiz{
		{
			ID:          "general-knowledge",
			Title:       "Allgemeinwissen",
			Tag:         "Wissen",
			Description: "5 Fragen zu verschiedenen Themen",
			Color:       "blue",
			Questions: []domain.Question{
				{Text: "Welches ist die Hauptstadt von Deutschland?", Options: []string{"München", "Berlin", "Hamburg", "Frankfurt"}, CorrectOption: 1},
				{Text: "Wie viele Kontinente gibt es?", Options: []string{"5", "6", "7", "8"}, CorrectOption: 2},
				{Text: "Wer malte die Mona Lisa?", Options: []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"}, CorrectOption: 2},
				{Text: "Welches ist der größte Planet in unserem Sonnensystem?", Options: []string{"Saturn", "Jupiter", "Neptun", "Uranus"}, CorrectOption: 1},
				{Text: "In welchem Jahr fiel die Berliner Mauer?", Options: []string{"1987", "1988", "1989", "1990"}, CorrectOption: 2},
			},
		},
		{
			ID:          "logic",
			Title:       "Logik & Denken",
			Tag:         "Logik",
			Description: "Teste deine logischen Fähigkeiten",
			Color:       "green",
			Questions: []domain.Question{
				{Text: "Welche Zahl kommt als nächstes? 2, 4, 8, 16, ...", Options: []string{"20", "24", "32", "64"}, CorrectOption: 2},
				{Text: "Wenn alle Blumen Pflanzen sind und einige Pflanzen grün sind, was ist dann sicher wahr?", Options: []string{"Alle Blumen sind grün", "Einige Blumen sind grün", "Keine Blumen sind grün", "Keine der Aussagen ist sicher wahr"}, CorrectOption: 3},
				{Text: "Ein Buch kostet 10€ plus die Hälfte seines Preises. Wie viel kostet das Buch?", Options: []string{"15€", "20€", "25€", "30€"}, CorrectOption: 1},
				{Text: "Welches Wort passt nicht in die Reihe? Apfel, Birne, Karotte, Banane", Options: []string{"Apfel", "Birne", "Karotte", "Banane"}, CorrectOption: 2},
				{Text: "Wenn es 12 Uhr mittags ist und die Uhr in 12 Stunden zweimal 90° dreht, welche Uhrzeit zeigt sie dann?", Options: []string{"12 Uhr", "18 Uhr", "6 Uhr", "3 Uhr"}, CorrectOption: 2},
			},
		},
		{
			ID:          "creativity",
			Title:       "Kreativität",
			Tag:         "Kreativ",
			Description: "Fragen rund um Kreativität und Kunst",
			Color:       "orange",
			Questions: []domain.Question{
				{Text: "Welche Farben sind die Primärfarben in der Malerei?", Options: []string{"Rot, Gelb, Grün", "Rot, Blau, Gelb", "Rot, Grün, Blau", "Orange, Lila, Grün"}, CorrectOption: 1},
				{Text: "Wer komponierte die \"Mondscheinsonate\"?", Options: []string{"Mozart", "Beethoven", "Bach", "Chopin"}, CorrectOption: 1},
				{Text: "Was ist ein Haiku?", Options: []string{"Ein japanisches Gericht", "Eine japanische Gedichtform", "Ein japanischer Kampfsport", "Ein japanisches Musikinstrument"}, CorrectOption: 1},
				{Text: "Welcher Künstler ist für seine \"Sternennacht\" bekannt?", Options: []string{"Claude Monet", "Vincent van Gogh", "Pablo Picasso", "Salvador Dalí"}, CorrectOption: 1},
				{Text: "Was bedeutet \"a cappella\" in der Musik?", Options: []string{"Sehr laut", "Sehr leise", "Ohne Begleitung von Instrumenten", "Mit Orchester"}, CorrectOption: 2},
			},
		},
		{
			ID:          "sports",
			Title:       "Sport & Trivia",
			Tag:         "Sport",
			Description: "Wie gut kennst du dich mit Sport aus?",
			Color:       "red",
			Questions: []domain.Question{
				{Text: "Wie viele Spieler hat eine Fußballmannschaft auf dem Feld?", Options: []string{"9", "10", "11", "12"}, CorrectOption: 2},
				{Text: "Welches Land gewann die FIFA Weltmeisterschaft 2014?", Options: []string{"Brasilien", "Argentinien", "Deutschland", "Spanien"}, CorrectOption: 2},
				{Text: "Wie viele Ringe hat das olympische Symbol?", Options: []string{"4", "5", "6", "7"}, CorrectOption: 1},
				{Text: "In welcher Sportart ist der \"Slam Dunk\" eine bekannte Technik?", Options: []string{"Tennis", "Volleyball", "Basketball", "Handball"}, CorrectOption: 2},
				{Text: "Wie heißt der wichtigste Tennisplatz in Wimbledon?", Options: []string{"Court One", "Main Court", "Centre Court", "Royal Court"}, CorrectOption: 2},
			},
		},
	}
}
