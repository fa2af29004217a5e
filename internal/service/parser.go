package service

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"expenselens/internal/models"

	"github.com/shopspring/decimal"
)

// Matches amounts like 12, 12.99, 10,50 with an optional currency prefix.
var amountPattern = regexp.MustCompile(`(?:[$€£]\s*)?(\d+(?:[.,]\d{1,2})?)`)

// ParseAnalysis turns the provider's raw text into a structured expense. It
// never fails: unparseable fields degrade to their defaults (amount 0 with
// Parsed=false, category Other, name falling back to the original
// description) while the raw text itself is preserved elsewhere for audit.
func ParseAnalysis(raw, description string) models.ParsedExpense {
	if parsed, ok := parseJSONAnalysis(raw); ok {
		return normalize(parsed, description)
	}
	return normalize(parseFreeformAnalysis(raw), description)
}

// parseJSONAnalysis handles the happy path where the model obeyed the
// prompt and returned a JSON object, possibly wrapped in code fences or
// surrounded by commentary.
func parseJSONAnalysis(raw string) (models.ParsedExpense, bool) {
	s := stripCodeFences(raw)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return models.ParsedExpense{}, false
	}

	var payload struct {
		Name     string          `json:"name"`
		Amount   json.RawMessage `json:"amount"`
		Category string          `json:"category"`
	}
	if err := json.Unmarshal([]byte(s[start:end+1]), &payload); err != nil {
		return models.ParsedExpense{}, false
	}

	parsed := models.ParsedExpense{Name: strings.TrimSpace(payload.Name)}

	// The model sometimes quotes the amount; accept both forms.
	amountStr := strings.Trim(strings.TrimSpace(string(payload.Amount)), `"`)
	if amount, err := decimal.NewFromString(amountStr); err == nil {
		parsed.Amount = amount
		parsed.Parsed = true
	}

	if category, ok := models.ParseCategory(payload.Category); ok {
		parsed.Category = category
	}

	return parsed, true
}

// parseFreeformAnalysis scrapes name, amount and category out of loose text
// such as "Lunch, $12.99, Food".
func parseFreeformAnalysis(raw string) models.ParsedExpense {
	var parsed models.ParsedExpense

	text := stripCodeFences(raw)
	segments := strings.Split(text, ",")

	if m := amountPattern.FindStringSubmatch(text); m != nil {
		amountStr := strings.Replace(m[1], ",", ".", 1)
		if amount, err := decimal.NewFromString(amountStr); err == nil {
			parsed.Amount = amount
			parsed.Parsed = true
		}
	}

	for _, segment := range segments {
		if category, ok := models.ParseCategory(segment); ok {
			parsed.Category = category
			break
		}
	}
	if parsed.Category == "" {
		// Segment-level match failed; try individual words.
		words := strings.FieldsFunc(text, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, word := range words {
			if category, ok := models.ParseCategory(word); ok {
				parsed.Category = category
				break
			}
		}
	}

	// The name is the first segment with any amount token removed.
	name := amountPattern.ReplaceAllString(segments[0], "")
	parsed.Name = strings.TrimSpace(strings.Trim(strings.TrimSpace(name), ":-"))

	return parsed
}

// normalize applies the degradation defaults: Other for a missing category,
// the original description for a missing name.
func normalize(parsed models.ParsedExpense, description string) models.ParsedExpense {
	if parsed.Category == "" {
		parsed.Category = models.CategoryOther
	}
	if parsed.Name == "" {
		parsed.Name = description
	}
	return parsed
}

func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json).
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
