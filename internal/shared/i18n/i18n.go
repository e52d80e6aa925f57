package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFiles embed.FS

// Translator resolves message keys to localized text. It is constructed once
// at startup and injected where needed; there is no package-level instance.
type Translator struct {
	catalogs map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
	fallback string
}

// New loads all embedded locale catalogs and prepares a matcher. The fallback
// locale must have a catalog; it is used when negotiation fails or a key is
// missing from the negotiated locale.
func New(fallback string) (*Translator, error) {
	entries, err := fs.ReadDir(localeFiles, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	catalogs := make(map[string]map[string]string, len(entries))
	var names []string
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		raw, err := localeFiles.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		var catalog map[string]string
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		catalogs[name] = catalog
		names = append(names, name)
	}

	if _, ok := catalogs[fallback]; !ok {
		return nil, fmt.Errorf("fallback locale %q has no catalog", fallback)
	}

	// Keep the fallback first so the matcher prefers it on a tie.
	sort.Slice(names, func(i, j int) bool {
		if names[i] == fallback {
			return true
		}
		if names[j] == fallback {
			return false
		}
		return names[i] < names[j]
	})

	tags := make([]language.Tag, 0, len(names))
	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("invalid locale name %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	return &Translator{
		catalogs: catalogs,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		fallback: fallback,
	}, nil
}

// Translate renders the message for key in the locale negotiated from the
// Accept-Language value. Placeholders of the form {name} are substituted from
// params. Unknown keys render as the key itself so missing catalog entries are
// visible rather than silent.
func (t *Translator) Translate(acceptLanguage, key string, params map[string]string) string {
	locale := t.fallback
	if strings.TrimSpace(acceptLanguage) != "" {
		if prefs, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			_, idx, conf := t.matcher.Match(prefs...)
			if conf > language.No {
				locale = t.tags[idx].String()
			}
		}
	}

	msg, ok := t.catalogs[locale][key]
	if !ok {
		msg, ok = t.catalogs[t.fallback][key]
	}
	if !ok {
		return key
	}
	if len(params) == 0 {
		return msg
	}

	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
