package prompts

import (
	"fmt"
	"strings"
)

// PromptAccountID asks for a local account id.
func PromptAccountID(title string, validator func(string) error) (string, error) {
	id, err := PromptInput(title, "", validator)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.TrimSpace(id), nil
}

// PromptAmount asks for a positive whole amount.
func PromptAmount(title string, validator func(string) error) (string, error) {
	amount, err := PromptInput(title, "", validator)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.TrimSpace(amount), nil
}

func PromptLevel(current string, validator func(string) error) (string, error) {
	levels := []string{"CITIZEN", "ADMIN", "DEVELOPER"}

	selected, err := PromptSelect("Authorization level:", levels, current, validator)
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return selected, nil
}
