package generate

import "github.com/auto-explainer/core/internal/models"

// fallbackName is used when no project name was extracted. There is no
// localized variant; Polish copy uses it as well.
const fallbackName = "New Development"

type tonePrefixes struct {
	aggressive   string
	simple       string
	storytelling string
	premium      string
}

type questionSet [10]string

// phrasebook holds every language-specific string for one language.
// Section templates receive the interpolated field values through vars.
type phrasebook struct {
	tone          tonePrefixes
	instagram     func(v vars) string
	facebook      func(v vars) string
	reels         func(v vars) string
	sellingPoints func(v vars) string
	whatsapp      func(v vars) string
	callScript    func(v vars) string
	questions     questionSet
}

type vars struct {
	name      string
	location  string
	prices    string
	sizes     string
	payment   string
	amenities string
	usp       string
	handover  string
	developer string
}

var english = phrasebook{
	tone: tonePrefixes{
		aggressive:   "ACT NOW: ",
		simple:       "Plain: ",
		storytelling: "Imagine this: ",
		premium:      "Premium: ",
	},
	instagram: func(v vars) string {
		return v.name + " in " + v.location + ". " + v.prices + " " + v.sizes + " " + v.payment +
			" Amenities: " + v.amenities + ". Handover: " + v.handover + ". By " + v.developer + "."
	},
	facebook: func(v vars) string {
		return "Discover " + v.name + ". Key points: " + v.usp + ". Prices: " + v.prices +
			". Sizes: " + v.sizes + ". Payment: " + v.payment + ". Location: " + v.location + "."
	},
	reels: func(v vars) string {
		return "Hook: Own " + v.name + " in " + v.location + ".\n- " + v.usp + "\n- " + v.prices +
			"\n- " + v.sizes + "\n- " + v.payment + "\nCTA: DM for details."
	},
	sellingPoints: func(v vars) string {
		return "Top 10: " + v.usp + ", Amenities: " + v.amenities + ", Handover: " + v.handover +
			", Developer: " + v.developer
	},
	whatsapp: func(v vars) string {
		return "Short: " + v.name + " in " + v.location + ". " + v.prices + " " + v.payment
	},
	callScript: func(v vars) string {
		return "Intro: calling about " + v.name + ". Confirm interest, share " + v.prices + " & " +
			v.payment + ", schedule viewing."
	},
	questions: questionSet{
		"What is the starting price?",
		"What sizes are available?",
		"What is the payment plan?",
		"Where is it located?",
		"When is handover?",
		"Who is the developer?",
		"What amenities are included?",
		"Expected ROI?",
		"Is financing available?",
		"How to reserve?",
	},
}

var polish = phrasebook{
	tone: tonePrefixes{
		aggressive:   "DZIAŁAJ TERAZ: ",
		simple:       "Prosto: ",
		storytelling: "Wyobraź sobie: ",
		premium:      "Premium: ",
	},
	instagram: func(v vars) string {
		return v.name + " w " + v.location + ". " + v.prices + " " + v.sizes + " " + v.payment +
			" Udogodnienia: " + v.amenities + ". Handover: " + v.handover + ". Deweloper: " + v.developer + "."
	},
	facebook: func(v vars) string {
		return "Poznaj " + v.name + ". Kluczowe atuty: " + v.usp + ". Ceny: " + v.prices +
			". Metraże: " + v.sizes + ". Płatność: " + v.payment + ". Lokalizacja: " + v.location + "."
	},
	reels: func(v vars) string {
		return "Hook: " + v.name + " w " + v.location + ".\n- " + v.usp + "\n- " + v.prices +
			"\n- " + v.sizes + "\n- " + v.payment + "\nCTA: Napisz po szczegóły."
	},
	sellingPoints: func(v vars) string {
		return "Top 10: " + v.usp + ", Udogodnienia: " + v.amenities + ", Handover: " + v.handover +
			", Deweloper: " + v.developer
	},
	whatsapp: func(v vars) string {
		return "Krótko: " + v.name + " w " + v.location + ". " + v.prices + " " + v.payment
	},
	callScript: func(v vars) string {
		return "Intro: dzwonię w sprawie " + v.name + ". Potwierdź zainteresowanie, podaj " + v.prices +
			" i " + v.payment + ", umów prezentację."
	},
	questions: questionSet{
		"Jaka jest cena startowa?",
		"Jakie metraże są dostępne?",
		"Jaki jest plan płatności?",
		"Gdzie znajduje się inwestycja?",
		"Kiedy odbiory?",
		"Kto jest deweloperem?",
		"Jakie udogodnienia?",
		"Oczekiwany zwrot?",
		"Czy dostępne jest finansowanie?",
		"Jak zarezerwować?",
	},
}

// bookFor returns the Polish phrasebook for pl and English for anything else.
func bookFor(lang models.Language) *phrasebook {
	if lang == models.LangPL {
		return &polish
	}
	return &english
}
