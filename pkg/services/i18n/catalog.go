// Package i18n holds the few labels the report needs, in English and Persian.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English text.
const (
	Free           = "Free"
	NoResultsFound = "No results found."
	PaginationInfo = "Showing %d to %d of %d entries"
	TotalPayable   = "Total payable"
)

var supported = []language.Tag{
	language.English,
	language.Persian,
}

var translations = map[language.Tag]map[string]string{
	language.English: {
		Free:           "Free",
		NoResultsFound: "No results found.",
		PaginationInfo: "Showing %d to %d of %d entries",
		TotalPayable:   "Total payable",
	},
	language.Persian: {
		Free:           "رایگان",
		NoResultsFound: "نتیجه‌ای یافت نشد.",
		PaginationInfo: "نمایش %d تا %d از %d مورد",
		TotalPayable:   "جمع قابل پرداخت",
	},
}

var (
	cat     = newCatalog()
	matcher = language.NewMatcher(supported)
)

func newCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			// SetString only fails on malformed tags, and these are constants.
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// NewTranslator picks the closest supported language to lang. Unknown or malformed
// values fall back to English.
func NewTranslator(lang string) *Translator {
	desired, err := language.Parse(lang)
	if err != nil {
		desired = language.English
	}
	_, idx, _ := matcher.Match(desired)
	tag := supported[idx]

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

func (t *Translator) Tag() language.Tag {
	return t.tag
}

func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}
