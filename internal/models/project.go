package models

import "time"

// SourceType identifies where a project's source material came from.
type SourceType string

const (
	SourceUpload SourceType = "upload"
	SourceURL    SourceType = "url"
)

// Tone selects the prefix phrase applied to generated copy.
// Values outside the known set are stored as given and render as premium.
type Tone string

const (
	TonePremium      Tone = "premium"
	ToneAggressive   Tone = "aggressive"
	ToneSimple       Tone = "simple"
	ToneStorytelling Tone = "storytelling"
)

// Language is an output language code.
type Language string

const (
	LangEN Language = "en"
	LangPL Language = "pl"
)

// SupportedLanguages lists every language outputs may be generated in.
var SupportedLanguages = []Language{LangEN, LangPL}

// IsSupported reports whether l is one of SupportedLanguages.
func (l Language) IsSupported() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// Section names, in generation order.
const (
	SectionInstagramPost   = "instagram_post"
	SectionFacebookPost    = "facebook_post"
	SectionReelsScript     = "reels_script"
	SectionSellingPoints   = "selling_points"
	SectionWhatsAppShort   = "whatsapp_short"
	SectionQA              = "qa"
	SectionSalesCallScript = "sales_call_script"
)

var Sections = []string{
	SectionInstagramPost,
	SectionFacebookPost,
	SectionReelsScript,
	SectionSellingPoints,
	SectionWhatsAppShort,
	SectionQA,
	SectionSalesCallScript,
}

// Facts is the heuristic record extracted from source text.
type Facts struct {
	Location    string   `bson:"location"     json:"location"`
	Prices      string   `bson:"prices"       json:"prices"`
	Sizes       string   `bson:"sizes"        json:"sizes"`
	PaymentPlan string   `bson:"payment_plan" json:"payment_plan"`
	Amenities   []string `bson:"amenities"    json:"amenities"`
	USP         []string `bson:"usp"          json:"usp"`
	Handover    string   `bson:"handover"     json:"handover"`
	Developer   string   `bson:"developer"    json:"developer"`
	Project     string   `bson:"project"      json:"project"`
}

// SectionMap maps section name to generated text.
type SectionMap map[string]string

// Outputs maps language code to its generated sections.
type Outputs map[string]SectionMap

// Project is one ingestion-and-generation record for a development launch.
type Project struct {
	ID         string     `bson:"-"                     json:"id,omitempty"`
	Title      string     `bson:"title"                 json:"title"`
	SourceType SourceType `bson:"source_type"           json:"source_type"`
	SourceURL  string     `bson:"source_url,omitempty"  json:"source_url,omitempty"`
	FilePath   string     `bson:"file_path,omitempty"   json:"file_path,omitempty"`
	StorageURL string     `bson:"storage_url,omitempty" json:"storage_url,omitempty"`
	Tone       Tone       `bson:"tone"                  json:"tone"`
	Extracted  Facts      `bson:"extracted"             json:"extracted"`
	Outputs    Outputs    `bson:"outputs"               json:"outputs"`
	CreatedAt  time.Time  `bson:"created_at"            json:"created_at"`
	UpdatedAt  *time.Time `bson:"updated_at,omitempty"  json:"updated_at,omitempty"`
}
