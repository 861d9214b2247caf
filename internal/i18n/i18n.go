// Package i18n holds the user-facing texts in every supported language and
// negotiates which one a request gets.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported language code
type Lang string

const (
	English Lang = "en"
	Hindi   Lang = "hi"
	Marathi Lang = "mr"
)

// Default is used when nothing better matches
const Default = English

// Supported lists the languages in matcher preference order
var Supported = []Lang{English, Hindi, Marathi}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Hindi,
	language.Marathi,
})

// Negotiate picks a supported language from a language parameter or an
// Accept-Language header value. Anything unknown falls back to English.
func Negotiate(preferences ...string) Lang {
	for _, pref := range preferences {
		pref = strings.TrimSpace(pref)
		if pref == "" {
			continue
		}
		tags, _, err := language.ParseAcceptLanguage(pref)
		if err != nil || len(tags) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(tags...)
		if conf == language.No {
			continue
		}
		return Supported[idx]
	}
	return Default
}

// Parse returns the supported language named by s, or English
func Parse(s string) Lang {
	switch l := Lang(strings.ToLower(strings.TrimSpace(s))); l {
	case English, Hindi, Marathi:
		return l
	}
	return Default
}

// String implements fmt.Stringer
func (l Lang) String() string {
	return string(l)
}

// T returns the text for key in lang, falling back to English and then to
// the key itself.
func T(lang Lang, key string) string {
	if s, ok := Lookup(lang, key); ok {
		return s
	}
	if s, ok := Lookup(English, key); ok {
		return s
	}
	return key
}

// Lookup returns the text for key in lang without any fallback
func Lookup(lang Lang, key string) (string, bool) {
	table, ok := catalog[lang]
	if !ok {
		return "", false
	}
	s, ok := table[key]
	return s, ok
}

// Format returns T(lang, key) with each {name} placeholder replaced
func Format(lang Lang, key string, args map[string]string) string {
	s := T(lang, key)
	for k, v := range args {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
