// Package extract derives a Facts record from raw source text using keyword
// heuristics.
//
// This is a placeholder for a real extraction pipeline (PDF parsing, OCR,
// model-based field detection). It deliberately does nothing smarter than
// substring matching and canned sentences; keep it that way until it is
// replaced wholesale.
package extract

import (
	"strings"
	"unicode"

	"github.com/auto-explainer/core/internal/models"
)

const snippetLimit = 160

const (
	cannedPrices      = "From competitive entry pricing; exact figures detected when using AI mode."
	cannedSizes       = "Studios to 4BR; sizes auto-detected in AI mode."
	cannedPaymentPlan = "Flexible installments available."
)

var (
	cannedAmenities = []string{"Pool", "Gym", "Parking"}
	cannedUSP       = []string{"Prime location", "Strong ROI potential"}
)

// Extract never fails; fields it cannot find stay empty.
func Extract(text string) models.Facts {
	runes := []rune(text)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}
	lower := string(lowered)

	facts := models.Facts{
		Amenities: []string{},
		USP:       []string{},
	}

	facts.Location = labelSnippet(runes, lowered, "location")
	facts.Handover = labelSnippet(runes, lowered, "handover")
	facts.Developer = labelSnippet(runes, lowered, "developer")
	facts.Project = labelSnippet(runes, lowered, "project")

	if containsAny(lower, "price", "from") {
		facts.Prices = cannedPrices
	}
	if containsAny(lower, "sqft", "sqm", "bed") {
		facts.Sizes = cannedSizes
	}
	if containsAny(lower, "payment", "installment") {
		facts.PaymentPlan = cannedPaymentPlan
	}
	if containsAny(lower, "amenit", "pool", "gym") {
		facts.Amenities = append([]string(nil), cannedAmenities...)
	}
	facts.USP = append([]string(nil), cannedUSP...)

	return facts
}

// labelSnippet returns the first line of the original text starting at the
// label's first occurrence, capped at snippetLimit runes.
func labelSnippet(original, lowered []rune, label string) string {
	idx := runeIndex(lowered, []rune(label))
	if idx < 0 {
		return ""
	}
	end := idx + snippetLimit
	if end > len(original) {
		end = len(original)
	}
	snippet := string(original[idx:end])
	if cut := strings.IndexByte(snippet, '\n'); cut >= 0 {
		snippet = snippet[:cut]
	}
	return snippet
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j := range needle {
			if haystack[i+j] != needle[j] {
				continue outer
			}
		}
		return i
	}
	return -1
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
