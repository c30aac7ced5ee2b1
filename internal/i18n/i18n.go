// Package i18n resolves business codes to localized, user-facing messages.
// Catalogs are YAML files embedded at build time, keyed by code. The request
// locale comes from the Accept-Language header via the locale middleware.
package i18n

import (
	"embed"
	"fmt"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"appforge/internal/domain"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Translator localizes business codes and named messages.
type Translator struct {
	bundle *goi18n.Bundle
}

// New loads the embedded catalogs. English is the fallback language.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for _, name := range []string{"locales/en.yaml", "locales/zh.yaml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return nil, fmt.Errorf("load locale %s: %w", name, err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// Code returns the localized message for a business code. Unknown codes fall
// back to the internal-error message so the envelope never leaks raw keys.
func (t *Translator) Code(lang string, code domain.Code, args map[string]string) string {
	if msg, ok := t.lookup(lang, code.String(), args); ok {
		return msg
	}
	msg, _ := t.lookup(lang, domain.CodeInternalServerError.String(), nil)
	return msg
}

// Message returns a localized non-code message, such as default entity names.
func (t *Translator) Message(lang, key string) string {
	msg, _ := t.lookup(lang, key, nil)
	return msg
}

func (t *Translator) lookup(lang, key string, args map[string]string) (string, bool) {
	localizer := goi18n.NewLocalizer(t.bundle, lang)
	cfg := &goi18n.LocalizeConfig{MessageID: key}
	if len(args) > 0 {
		data := make(map[string]interface{}, len(args))
		for k, v := range args {
			data[k] = v
		}
		cfg.TemplateData = data
	}
	msg, err := localizer.Localize(cfg)
	if err != nil {
		return "", false
	}
	return msg, true
}
