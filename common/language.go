// common/language.go

package common

import (
	"strings"

	"MediaConverter/locales"
)

// DetectAndSetLanguage sets the application language based on the following priorities:
// configured language, system language, English.
func DetectAndSetLanguage(configMgr *ConfigManager, logger *Logger) string {
	settings := configMgr.Settings()
	configLang := strings.ToLower(settings.Language)
	supportedLangs := locales.GetAvailableLanguages()

	if configLang != "" {
		for _, lang := range supportedLangs {
			if configLang == lang {
				if err := locales.LoadTranslations(lang); err != nil {
					logger.Error("Failed to load translations for %s: %v", lang, err)
					break
				}
				logger.Info("Loaded language from configuration: %s", lang)
				return lang
			}
		}
	}

	systemLang := getSystemLanguage()
	if len(systemLang) >= 2 {
		systemLang = systemLang[:2]
	}

	lang := "en"
	for _, supported := range supportedLangs {
		if systemLang == supported {
			lang = supported
			break
		}
	}

	if err := locales.LoadTranslations(lang); err != nil {
		logger.Error("Failed to load translations for %s: %v", lang, err)
	}
	logger.Info("Using language: %s (system: %s)", lang, systemLang)

	if err := configMgr.Update(func(s *Settings) { s.Language = lang }); err != nil {
		logger.Warning("Failed to save language config: %v", err)
	}
	return lang
}
