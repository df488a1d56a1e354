package settings

// Supported UI languages
const (
	LanguageEnglish = "en"
	LanguageRussian = "ru"
)

// Setting keys
const (
	keyAPIToken = "api_token"
	keyLanguage = "language"
)

// Settings holds the user-editable preferences.
type Settings struct {
	APIToken string `json:"api_token"`
	Language string `json:"language"`
}

// ValidLanguage reports whether the given language code is supported.
func ValidLanguage(lang string) bool {
	return lang == LanguageEnglish || lang == LanguageRussian
}
