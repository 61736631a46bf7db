package generate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auto-explainer/core/internal/models"
)

func marinaFacts() models.Facts {
	return models.Facts{
		Project:   "Marina Heights",
		Location:  "Downtown",
		Amenities: []string{},
		USP:       []string{"Prime location", "Strong ROI potential"},
	}
}

func TestGenerateSimpleEnglishInstagram(t *testing.T) {
	out := Generate(marinaFacts(), models.ToneSimple, models.LangEN)
	assert.True(t, strings.HasPrefix(out[models.SectionInstagramPost], "Plain: Marina Heights in Downtown."),
		"got %q", out[models.SectionInstagramPost])
}

func TestGenerateAllToneLanguageCombinations(t *testing.T) {
	prefixes := map[models.Language]map[models.Tone]string{
		models.LangEN: {
			models.TonePremium:      "Premium: ",
			models.ToneAggressive:   "ACT NOW: ",
			models.ToneSimple:       "Plain: ",
			models.ToneStorytelling: "Imagine this: ",
		},
		models.LangPL: {
			models.TonePremium:      "Premium: ",
			models.ToneAggressive:   "DZIAŁAJ TERAZ: ",
			models.ToneSimple:       "Prosto: ",
			models.ToneStorytelling: "Wyobraź sobie: ",
		},
	}

	for lang, byTone := range prefixes {
		for tone, prefix := range byTone {
			t.Run(string(lang)+"/"+string(tone), func(t *testing.T) {
				out := Generate(marinaFacts(), tone, lang)
				require.Len(t, out, len(models.Sections))
				for _, section := range models.Sections {
					text, ok := out[section]
					require.True(t, ok, "missing section %s", section)
					assert.NotEmpty(t, text)
					if section == models.SectionQA {
						assert.False(t, strings.HasPrefix(text, prefix) && prefix != "")
						continue
					}
					assert.True(t, strings.HasPrefix(text, prefix), "%s: %q", section, text)
				}
			})
		}
	}
}

func TestGenerateUnknownToneFallsBackToPremium(t *testing.T) {
	for _, tone := range []models.Tone{"", "loud", "PREMIUM"} {
		out := Generate(marinaFacts(), tone, models.LangEN)
		assert.True(t, strings.HasPrefix(out[models.SectionWhatsAppShort], "Premium: "))
	}
}

func TestGenerateQAIsToneInvariant(t *testing.T) {
	for _, lang := range models.SupportedLanguages {
		base := Generate(models.Facts{}, models.TonePremium, lang)[models.SectionQA]
		for _, tone := range []models.Tone{models.ToneAggressive, models.ToneSimple, models.ToneStorytelling, "x"} {
			assert.Equal(t, base, Generate(marinaFacts(), tone, lang)[models.SectionQA])
		}
		assert.Equal(t, 10, strings.Count(base, "Q: "))
		assert.Equal(t, 10, strings.Count(base, "A: "))
		assert.True(t, strings.HasSuffix(base, "\nA: "))
	}
}

func TestGenerateQAEnglishLayout(t *testing.T) {
	qa := Generate(models.Facts{}, models.TonePremium, models.LangEN)[models.SectionQA]
	lines := strings.Split(qa, "\n")
	require.Len(t, lines, 20)
	assert.Equal(t, "Q: What is the starting price?", lines[0])
	assert.Equal(t, "A: ", lines[1])
	assert.Equal(t, "Q: How to reserve?", lines[18])
}

func TestGenerateMissingProjectUsesFallbackName(t *testing.T) {
	en := Generate(models.Facts{}, models.TonePremium, models.LangEN)
	assert.Equal(t, "Premium: Short: New Development in .  ", en[models.SectionWhatsAppShort])

	pl := Generate(models.Facts{}, models.ToneSimple, models.LangPL)
	assert.Equal(t, "Prosto: Krótko: New Development w .  ", pl[models.SectionWhatsAppShort])
}

func TestGenerateJoinsListFacts(t *testing.T) {
	facts := marinaFacts()
	facts.Amenities = []string{"Pool", "Gym", "Parking"}
	out := Generate(facts, models.TonePremium, models.LangEN)

	assert.Equal(t,
		"Premium: Top 10: Prime location, Strong ROI potential, Amenities: Pool, Gym, Parking, Handover: , Developer: ",
		out[models.SectionSellingPoints])
}

func TestGenerateUnknownLanguageRendersEnglish(t *testing.T) {
	out := Generate(marinaFacts(), models.TonePremium, "de")
	assert.Equal(t, Generate(marinaFacts(), models.TonePremium, models.LangEN), out)
}

func TestBuildOutputs(t *testing.T) {
	out := BuildOutputs(marinaFacts(), models.ToneAggressive, []models.Language{models.LangPL, models.LangEN, models.LangPL})

	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out["pl"][models.SectionFacebookPost], "DZIAŁAJ TERAZ: Poznaj Marina Heights."))
	assert.True(t, strings.HasPrefix(out["en"][models.SectionFacebookPost], "ACT NOW: Discover Marina Heights."))

	assert.Empty(t, BuildOutputs(marinaFacts(), models.TonePremium, nil))
}
