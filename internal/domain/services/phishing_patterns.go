package services

import (
	"regexp"
	"sync"

	"github.com/cloudflare/ahocorasick"
)

// phraseSet finds which of a fixed list of lower-case phrases occur as
// substrings of a text. ahocorasick.Matcher.Match mutates internal state,
// so calls are serialized.
type phraseSet struct {
	phrases []string

	mu      sync.Mutex
	matcher *ahocorasick.Matcher
}

func newPhraseSet(phrases []string) *phraseSet {
	return &phraseSet{
		phrases: phrases,
		matcher: ahocorasick.NewStringMatcher(phrases),
	}
}

// matches returns the matched phrases in declaration order, each at most once
func (p *phraseSet) matches(text string) []string {
	if len(p.phrases) == 0 || text == "" {
		return nil
	}

	p.mu.Lock()
	hits := p.matcher.Match([]byte(text))
	p.mu.Unlock()

	if len(hits) == 0 {
		return nil
	}
	seen := make([]bool, len(p.phrases))
	for _, i := range hits {
		seen[i] = true
	}
	out := make([]string, 0, len(hits))
	for i, ok := range seen {
		if ok {
			out = append(out, p.phrases[i])
		}
	}
	return out
}

func (p *phraseSet) any(text string) bool {
	return len(p.matches(text)) > 0
}

// BonusRule adds a flat number of points when its trigger is present in the
// normalized text. Rules are independent and stack.
type BonusRule struct {
	Name   string
	Points int
	Signal string

	match func(text string) bool
}

// Matches reports whether the rule fires for normalized text
func (r BonusRule) Matches(text string) bool {
	return r.match != nil && r.match(text)
}

// PhraseBonus fires when any of phrases occurs in the text
func PhraseBonus(name string, points int, signal string, phrases ...string) BonusRule {
	set := newPhraseSet(phrases)
	return BonusRule{Name: name, Points: points, Signal: signal, match: set.any}
}

// PatternBonus fires when re matches the text
func PatternBonus(name string, points int, signal string, re *regexp.Regexp) BonusRule {
	return BonusRule{Name: name, Points: points, Signal: signal, match: re.MatchString}
}

// Secondary signal patterns shared by every classifier profile
var (
	phoneNumberPattern = regexp.MustCompile(`\+?\d[\d\s\-()]{8,}\d`)
	urlPattern         = regexp.MustCompile(`(?i)https?://|www\.|\b[a-z0-9-]+\.(com|in|net|org|xyz|top|tk|ly|info|co)\b`)
	currencyPattern    = regexp.MustCompile(`(?i)[₹$€£]\s*\d[\d,]*|\d[\d,]*\s*(rs|inr|usd|dollars?|rupees?)\b|\b(rs\.?|inr)\s*\d[\d,]*`)
)

var urgencyPhrases = []string{
	"urgent",
	"immediately",
	"act now",
	"limited time",
	"expire",
	"within 24 hours",
	"today only",
	"last chance",
	"right now",
	"asap",
	"final notice",
	"turant",
	"jaldi",
}

var pressurePhrases = []string{
	"do not disconnect",
	"don't disconnect",
	"do not hang up",
	"don't hang up",
	"stay on the line",
	"don't tell anyone",
	"do not tell anyone",
	"keep this confidential",
	"you will be arrested",
	"legal action",
	"last warning",
}

var moneyTransferPhrases = []string{
	"transfer the amount",
	"transfer money",
	"send money",
	"pay the fine",
	"pay a fine",
	"security deposit",
	"wire transfer",
	"bank transfer",
	"gift card",
	"processing fee",
	"verification amount",
}
