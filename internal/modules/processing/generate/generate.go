// Package generate renders templated marketing copy from extracted facts.
package generate

import (
	"strings"

	"github.com/auto-explainer/core/internal/models"
)

// Generate renders all seven sections for one language. Every section except
// qa is prefixed with the tone marker; missing facts render as empty strings.
func Generate(facts models.Facts, tone models.Tone, lang models.Language) models.SectionMap {
	book := bookFor(lang)
	v := varsFrom(facts)
	prefix := book.tonePrefix(tone)

	return models.SectionMap{
		models.SectionInstagramPost:   prefix + book.instagram(v),
		models.SectionFacebookPost:    prefix + book.facebook(v),
		models.SectionReelsScript:     prefix + book.reels(v),
		models.SectionSellingPoints:   prefix + book.sellingPoints(v),
		models.SectionWhatsAppShort:   prefix + book.whatsapp(v),
		models.SectionQA:              book.qa(),
		models.SectionSalesCallScript: prefix + book.callScript(v),
	}
}

// BuildOutputs calls Generate once per language, in order. Duplicate codes
// simply overwrite the same key.
func BuildOutputs(facts models.Facts, tone models.Tone, langs []models.Language) models.Outputs {
	out := make(models.Outputs, len(langs))
	for _, lang := range langs {
		out[string(lang)] = Generate(facts, tone, lang)
	}
	return out
}

func (b *phrasebook) tonePrefix(tone models.Tone) string {
	switch tone {
	case models.ToneAggressive:
		return b.tone.aggressive
	case models.ToneSimple:
		return b.tone.simple
	case models.ToneStorytelling:
		return b.tone.storytelling
	default:
		return b.tone.premium
	}
}

func (b *phrasebook) qa() string {
	items := make([]string, len(b.questions))
	for i, q := range b.questions {
		items[i] = "Q: " + q + "\nA: "
	}
	return strings.Join(items, "\n")
}

func varsFrom(f models.Facts) vars {
	name := f.Project
	if name == "" {
		name = fallbackName
	}
	return vars{
		name:      name,
		location:  f.Location,
		prices:    f.Prices,
		sizes:     f.Sizes,
		payment:   f.PaymentPlan,
		amenities: strings.Join(f.Amenities, ", "),
		usp:       strings.Join(f.USP, ", "),
		handover:  f.Handover,
		developer: f.Developer,
	}
}
