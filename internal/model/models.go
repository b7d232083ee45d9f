package model

// RawRecord is one input row keyed by its (cleaned) header name
type RawRecord map[string]string

// Required input columns, in the order they are projected.
const (
	FieldTitle       = "title"
	FieldAuthor      = "author"
	FieldPublisher   = "publisher"
	FieldGenres      = "genres"
	FieldPublishDate = "publishDate"
	FieldLanguage    = "language"
)

// SelectedFieldNames lists the columns the selector projects out of a RawRecord
var SelectedFieldNames = []string{
	FieldTitle,
	FieldAuthor,
	FieldPublisher,
	FieldGenres,
	FieldPublishDate,
	FieldLanguage,
}

// OutputHeader is the exact column order of the generated dataset
var OutputHeader = []string{
	"id",
	FieldTitle,
	FieldAuthor,
	FieldPublisher,
	"copiesNumber",
	"rarity",
	FieldGenres,
	FieldPublishDate,
	FieldLanguage,
	"ageLimit",
}

// SelectedFields is the projection of the required columns. Every value is non-empty.
type SelectedFields struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	Genres      string `json:"genres"`
	PublishDate string `json:"publishDate"`
	Language    string `json:"language"`
}

// Rarity tiers
const (
	RarityCommon = "Common"
	RarityRare   = "Rare"
	RarityUnique = "Unique"
)

// Book is the enriched output record
type Book struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	Publisher    string `json:"publisher"`
	CopiesNumber int    `json:"copiesNumber"`
	Rarity       string `json:"rarity"`
	Genres       string `json:"genres"`
	PublishYear  int    `json:"publishDate"`
	Language     string `json:"language"`
	AgeLimit     int    `json:"ageLimit"`
}

// SynthesisSpec defines the domains synthesized attributes are drawn from
type SynthesisSpec struct {
	MinCopies int      `json:"minCopies" mapstructure:"min_copies"`
	MaxCopies int      `json:"maxCopies" mapstructure:"max_copies"`
	Rarities  []string `json:"rarities" mapstructure:"rarities"`
	AgeLimits []int    `json:"ageLimits" mapstructure:"age_limits"`
}

// DefaultSynthesis returns the reference synthesis domains.
func DefaultSynthesis() SynthesisSpec {
	return SynthesisSpec{
		MinCopies: 5,
		MaxCopies: 15,
		Rarities:  []string{RarityCommon, RarityRare, RarityUnique},
		AgeLimits: []int{0, 6, 12, 16, 18, 21},
	}
}
