// Package textlang decides whether a user message is Arabic or English.
// The whole reply pipeline is bilingual and keyed off this single call.
package textlang

type Lang string

const (
	Arabic  Lang = "ar"
	English Lang = "en"
)

// Detect returns Arabic if the text contains at least one character from
// the Arabic Unicode block, English otherwise. Mixed messages follow the
// Arabic branch on purpose: a single Arabic word signals the expected
// reply language more strongly than the Latin remainder.
func Detect(text string) Lang {
	for _, r := range text {
		if r >= 0x0600 && r <= 0x06FF {
			return Arabic
		}
	}
	return English
}

func (l Lang) IsArabic() bool {
	return l == Arabic
}

func (l Lang) Label() string {
	if l == Arabic {
		return "العربية"
	}
	return "English"
}
