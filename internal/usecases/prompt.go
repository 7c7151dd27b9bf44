package usecases

import (
	"fmt"
	"strings"

	"digestease/internal/models"
)

const RAPPORT_PROMPT = `You are a digestive health assistant. You receive a user's daily journal
logs: what they ate, whether they drank alcohol, their bowel movements, stress level (1-10),
pain and nausea. Write a short rapport in plain text that points out patterns between food,
stress and symptoms, names possible trigger foods and gives two or three practical suggestions.
Do not give a diagnosis. Put the rapport between ` + SEPARATOR + ` markers.`

// BuildRapportPrompt renders logs oldest first, one block per day.
func BuildRapportPrompt(logs []models.LogEntry) string {
	var b strings.Builder
	b.WriteString("Journal logs:\n")

	for i := len(logs) - 1; i >= 0; i-- {
		entry := logs[i]
		food := "nothing recorded"
		if len(entry.FoodInput) > 0 {
			food = strings.Join(entry.FoodInput, ", ")
		}
		fmt.Fprintf(&b, "\nDate: %s\nFood: %s\nAlcohol: %s\nBowel movements: %s\nStress: %d/10\nPain: %s\nNausea: %s\n",
			entry.Date,
			food,
			yesNo(entry.Alcohol),
			entry.BowelMovements,
			entry.Stress,
			yesNo(entry.Pain),
			yesNo(entry.Nausea),
		)
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
