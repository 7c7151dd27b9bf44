package usecases

import (
	"strings"
	"testing"

	"digestease/internal/models"
)

func TestBuildRapportPromptOrdersOldestFirst(t *testing.T) {
	logs := []models.LogEntry{
		{Date: "2024-03-02", FoodInput: []string{"pizza"}, BowelMovements: models.BowelBloated, Stress: 7, Alcohol: true},
		{Date: "2024-03-01", FoodInput: []string{"eggs", "toast"}, BowelMovements: models.BowelNormal, Stress: 3, Nausea: true},
	}

	prompt := BuildRapportPrompt(logs)

	first := strings.Index(prompt, "2024-03-01")
	second := strings.Index(prompt, "2024-03-02")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("expected oldest log first:\n%s", prompt)
	}
	for _, want := range []string{"Food: eggs, toast", "Nausea: yes", "Alcohol: yes", "Stress: 7/10", "Bowel movements: Bloated"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in prompt:\n%s", want, prompt)
		}
	}
}

func TestBuildRapportPromptEmptyFood(t *testing.T) {
	prompt := BuildRapportPrompt([]models.LogEntry{{Date: "2024-03-01", BowelMovements: models.BowelNormal, Stress: 1}})
	if !strings.Contains(prompt, "Food: nothing recorded") {
		t.Fatalf("expected placeholder for empty food:\n%s", prompt)
	}
}
