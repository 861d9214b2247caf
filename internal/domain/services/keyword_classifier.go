package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
)

// ClassifierProfile configures a KeywordClassifier for one kind of input
type ClassifierProfile struct {
	Name          string
	Kind          models.ScanKind
	Categories    []models.ScamCategory
	Bonuses       []BonusRule
	FallbackLabel string
	DefaultTips   []string
}

// Bonus rule points
const (
	UrgencyBonus       = 15
	PressureBonus      = 20
	MoneyTransferBonus = 25
	PhoneNumberBonus   = 10
	MessageURLBonus    = 15
	CallURLBonus       = 10
	CurrencyBonus      = 10
)

func urgencyRule() BonusRule {
	return PhraseBonus("urgency", UrgencyBonus, "Uses urgent language to rush you", urgencyPhrases...)
}

func phoneRule() BonusRule {
	return PatternBonus("phone_number", PhoneNumberBonus, "Contains a phone number - verify before calling", phoneNumberPattern)
}

func urlRule(points int) BonusRule {
	return PatternBonus("url", points, "Contains a link - verify before clicking", urlPattern)
}

func currencyRule() BonusRule {
	return PatternBonus("currency", CurrencyBonus, "Mentions a money amount", currencyPattern)
}

// MessageProfile scores pasted SMS, chat and email text
func MessageProfile() ClassifierProfile {
	return ClassifierProfile{
		Name:       "message",
		Kind:       models.ScanKindText,
		Categories: ScamCategories,
		Bonuses: []BonusRule{
			urgencyRule(),
			phoneRule(),
			urlRule(MessageURLBonus),
			currencyRule(),
		},
		FallbackLabel: models.CategoryUnknown,
		DefaultTips:   DefaultTips,
	}
}

// CallProfile scores call transcripts. Calls add pressure and money
// transfer rules and report "Safe" when no category matches.
func CallProfile() ClassifierProfile {
	return ClassifierProfile{
		Name:       "call",
		Kind:       models.ScanKindAudio,
		Categories: ScamCategories,
		Bonuses: []BonusRule{
			urgencyRule(),
			PhraseBonus("pressure", PressureBonus, "Caller pressures you to stay on the line or keep it secret", pressurePhrases...),
			PhraseBonus("money_transfer", MoneyTransferBonus, "Caller asks you to transfer money", moneyTransferPhrases...),
			phoneRule(),
			urlRule(CallURLBonus),
			currencyRule(),
		},
		FallbackLabel: models.CategorySafe,
		DefaultTips:   DefaultTips,
	}
}

// ScreenshotProfile scores text extracted from a screenshot
func ScreenshotProfile() ClassifierProfile {
	return ClassifierProfile{
		Name:       "screenshot",
		Kind:       models.ScanKindScreenshot,
		Categories: ScamCategories,
		Bonuses: []BonusRule{
			urgencyRule(),
			phoneRule(),
			urlRule(CallURLBonus),
			currencyRule(),
		},
		FallbackLabel: models.CategoryUnknown,
		DefaultTips:   DefaultTips,
	}
}

type compiledCategory struct {
	category models.ScamCategory
	keywords *phraseSet
}

// KeywordClassifier scores free text against scam categories and bonus
// rules. It holds no per-call state and is safe for concurrent use.
type KeywordClassifier struct {
	profile    ClassifierProfile
	categories []compiledCategory
}

// NewKeywordClassifier compiles the keyword matchers of a profile
func NewKeywordClassifier(profile ClassifierProfile) *KeywordClassifier {
	c := &KeywordClassifier{
		profile:    profile,
		categories: make([]compiledCategory, 0, len(profile.Categories)),
	}
	for _, cat := range profile.Categories {
		c.categories = append(c.categories, compiledCategory{
			category: cat,
			keywords: newPhraseSet(cat.Keywords),
		})
	}
	return c
}

// Profile returns the profile the classifier was built from
func (c *KeywordClassifier) Profile() ClassifierProfile {
	return c.profile
}

// CategoryMatch is the per-category outcome of a classification
type CategoryMatch struct {
	Category models.ScamCategory
	Matched  []string
	Score    float64
}

// Eligible reports whether enough keywords matched for the category to count
func (m CategoryMatch) Eligible() bool {
	return len(m.Matched) >= models.MinCategoryMatches
}

// NormalizeText applies NFKC and lower-cases, so full-width and
// compatibility forms match plain keywords
func NormalizeText(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

// Match returns the per-category matches for text in declaration order
func (c *KeywordClassifier) Match(text string) []CategoryMatch {
	normalized := NormalizeText(text)
	out := make([]CategoryMatch, 0, len(c.categories))
	for _, cc := range c.categories {
		matched := cc.keywords.matches(normalized)
		var score float64
		if n := len(cc.category.Keywords); n > 0 {
			score = float64(len(matched)) / float64(n) * 100
		}
		out = append(out, CategoryMatch{Category: cc.category, Matched: matched, Score: score})
	}
	return out
}

// Classify scores text and returns a fully tiered result in English
func (c *KeywordClassifier) Classify(text string) *models.ScanResult {
	return c.ClassifyLocalized(text, i18n.English)
}

// ClassifyLocalized is Classify with the suggested action in lang
func (c *KeywordClassifier) ClassifyLocalized(text string, lang i18n.Lang) *models.ScanResult {
	normalized := NormalizeText(text)

	var (
		best    *CategoryMatch
		signals []string
	)
	matches := c.Match(text)
	for i := range matches {
		m := &matches[i]
		if !m.Eligible() {
			continue
		}
		if best == nil || m.Score > best.Score {
			best = m
		}
	}

	score := 0.0
	label := c.profile.FallbackLabel
	tips := c.profile.DefaultTips
	if best != nil {
		score = best.Score
		label = best.Category.Label
		tips = best.Category.Tips
		signals = append(signals, fmt.Sprintf("Matches %s keywords: %s", best.Category.Label, strings.Join(best.Matched, ", ")))
	}

	for _, rule := range c.profile.Bonuses {
		if rule.Matches(normalized) {
			score += float64(rule.Points)
			signals = append(signals, rule.Signal)
		}
	}

	if len(signals) == 0 {
		signals = []string{i18n.T(lang, "signal_no_patterns")}
	}

	result := &models.ScanResult{
		MatchedCategory: label,
		MatchedSignals:  signals,
		Suggestions:     append([]string(nil), tips...),
		RawInput:        text,
		InputType:       c.profile.Kind,
		Source:          models.ScanSourceLocal,
		ScannedAt:       time.Now().UTC(),
	}
	result.ApplyScore(models.ClampFloatScore(score))
	result.SuggestedAction = SuggestedAction(lang, result.Tier)
	return result
}

// SuggestedAction returns the localized advice for a tier
func SuggestedAction(lang i18n.Lang, tier models.RiskTier) string {
	switch tier {
	case models.RiskTierSafe:
		return i18n.T(lang, "action_safe")
	case models.RiskTierSuspicious:
		return i18n.T(lang, "action_suspicious")
	default:
		return i18n.T(lang, "action_high_risk")
	}
}
