// Package locale renders user-facing messages in the caller's language.
// Spanish is the default and covers any language without a bundle.
package locale

import (
	"embed"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed messages/*.yaml
var messageFS embed.FS

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
)

func loadBundle() *i18n.Bundle {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.Spanish)
		bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		entries, err := messageFS.ReadDir("messages")
		if err != nil {
			panic(err)
		}
		for _, entry := range entries {
			data, err := messageFS.ReadFile(path.Join("messages", entry.Name()))
			if err != nil {
				panic(err)
			}
			bundle.MustParseMessageFileBytes(data, entry.Name())
		}
	})
	return bundle
}

// NewLocalizer matches an Accept-Language header against the bundled languages.
func NewLocalizer(acceptLanguage string) *i18n.Localizer {
	return i18n.NewLocalizer(loadBundle(), acceptLanguage, language.Spanish.String())
}

// Message localizes id, returning fallback when the id is unknown.
func Message(acceptLanguage, id, fallback string) string {
	if id == "" {
		return fallback
	}

	text, err := NewLocalizer(acceptLanguage).Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || text == "" {
		return fallback
	}
	return text
}
