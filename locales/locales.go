// Package locales serves the embedded user interface translations.
package locales

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed translations/*.json
var translationsFS embed.FS

const translationsDir = "translations"

var (
	mutex     sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   = "en"
)

func newBundle() (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := translationsFS.ReadDir(translationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded translations: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		if _, err := b.LoadMessageFileFS(translationsFS, path.Join(translationsDir, entry.Name())); err != nil {
			return nil, fmt.Errorf("failed to parse translation file %s: %w", entry.Name(), err)
		}
	}
	return b, nil
}

// LoadTranslations activates the language. English stays the fallback for missing keys.
func LoadTranslations(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !isAvailable(lang) {
		return fmt.Errorf("no translation file for language %q", lang)
	}

	mutex.Lock()
	defer mutex.Unlock()

	if bundle == nil {
		b, err := newBundle()
		if err != nil {
			return err
		}
		bundle = b
	}
	localizer = i18n.NewLocalizer(bundle, lang, language.English.String())
	current = lang
	return nil
}

// CurrentLanguage returns the active language code
func CurrentLanguage() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return current
}

// Translate returns the translated string for the given key.
// If the translation is not found, returns the key itself.
func Translate(key string) string {
	mutex.RLock()
	l := localizer
	mutex.RUnlock()

	if l == nil {
		return key
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil || msg == "" {
		return key
	}
	return msg
}

// GetAvailableLanguages returns the language codes of the embedded translation files.
// Returns ["en"] as fallback on error.
func GetAvailableLanguages() []string {
	entries, err := translationsFS.ReadDir(translationsDir)
	if err != nil {
		return []string{"en"}
	}
	var langs []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		langs = append(langs, strings.TrimSuffix(entry.Name(), ".json"))
	}
	if len(langs) == 0 {
		return []string{"en"}
	}
	sort.Strings(langs)
	return langs
}

func isAvailable(lang string) bool {
	for _, l := range GetAvailableLanguages() {
		if l == lang {
			return true
		}
	}
	return false
}
