package services

import (
	"net"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"scamshield/internal/domain/models"
	"scamshield/internal/i18n"
)

// URL check weights
const (
	NoHTTPSPoints          = 25
	IPHostPoints           = 30
	SuspiciousTLDPoints    = 20
	LongURLPoints          = 10
	PhishingKeywordPoints  = 15
	SubdomainCountPoints   = 15
	HyphenatedHostPoints   = 10
	DoubleTLDPoints        = 25
	BrandInSubdomainPoints = 30

	LongURLThreshold  = 100
	MaxSubdomainCount = 2
)

// Attack pattern keys, in check order
const (
	PatternNoHTTPS             = "no_https"
	PatternIPAddress           = "ip_address"
	PatternSuspiciousTLD       = "suspicious_tld"
	PatternURLTooLong          = "url_too_long"
	PatternPhishingKeyword     = "phishing_keyword"
	PatternExcessiveSubdomains = "excessive_subdomains"
	PatternHyphenatedDomain    = "hyphenated_domain"
	PatternDoubleTLD           = "double_tld"
	PatternSubdomainBrand      = "subdomain_brand"
	PatternEncodedChars        = "encoded_chars"
	PatternPunycode            = "punycode"
	PatternPortNumber          = "port_number"
	PatternInvalidURL          = "invalid_url"
)

// KnownBrands are names phishing pages commonly borrow
var KnownBrands = []string{
	"google", "facebook", "amazon", "apple", "microsoft", "paypal", "netflix",
	"instagram", "twitter", "linkedin", "whatsapp", "youtube", "gmail", "yahoo",
	"outlook", "dropbox", "adobe", "spotify", "uber", "airbnb", "ebay",
	"walmart", "target", "costco", "chase", "wellsfargo", "bankofamerica",
	"citibank", "amex", "visa", "mastercard", "paytm", "phonepe", "gpay",
	"sbi", "hdfc", "icici", "axis", "flipkart", "myntra", "swiggy", "zomato",
}

// SuspiciousTLDs are top-level domains frequently abused for spam
var SuspiciousTLDs = []string{
	"xyz", "top", "work", "click", "link", "tk", "ml", "ga", "cf",
	"gq", "pw", "cc", "ws", "info", "biz", "online", "site", "club",
}

// doubleTLDLabels are generic TLDs that should never appear left of the
// real public suffix
var doubleTLDLabels = []string{"com", "net", "org", "edu", "gov", "co"}

// PhishingKeywords are words phishing URLs use to look official. Brand
// names are deliberately absent; they are handled by the brand check.
var PhishingKeywords = []string{
	"login", "signin", "sign-in", "logon", "verify", "verification", "secure",
	"account", "update", "confirm", "banking", "password", "wallet", "suspend",
	"unlock", "validate", "authenticate", "credential", "billing", "recover",
	"webscr", "kyc",
}

var (
	encodedCharPattern = regexp.MustCompile(`%[0-9a-fA-F]{2}`)
	hostPortPattern    = regexp.MustCompile(`^[0-9]+(/|\?|#|$)`)
)

// URLFinding is one triggered check
type URLFinding struct {
	Key    string `json:"key"`
	Points int    `json:"points"`
	Brand  string `json:"brand,omitempty"`
}

// URLReport is the raw outcome of inspecting a URL, before localization
type URLReport struct {
	Input      string
	Normalized string
	Valid      bool
	Components *models.URLComponents
	Findings   []URLFinding
	Score      int
}

// URLAnalyzer scores URL strings with fixed structural heuristics. Pure,
// no network access; safe for concurrent use.
type URLAnalyzer struct {
	suspiciousTLDs map[string]bool
	doubleTLDs     map[string]bool
	brands         []string
	keywords       *phraseSet
}

// NewURLAnalyzer builds an analyzer over the built-in tables
func NewURLAnalyzer() *URLAnalyzer {
	return &URLAnalyzer{
		suspiciousTLDs: toSet(SuspiciousTLDs),
		doubleTLDs:     toSet(doubleTLDLabels),
		brands:         KnownBrands,
		keywords:       newPhraseSet(PhishingKeywords),
	}
}

func toSet(items []string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}

// NormalizeURL trims input and prepends https:// when no scheme is given.
// Opaque forms such as mailto: or javascript: keep their scheme; a bare
// host:port does not count as one.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if strings.Contains(s, "://") {
		return s
	}
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Opaque != "" && !hostPortPattern.MatchString(u.Opaque) {
		return s
	}
	return "https://" + s
}

// webSchemes are the schemes Inspect scores; anything else is invalid
var webSchemes = map[string]bool{"http": true, "https": true}

// Inspect runs every check on raw and returns the findings. Unparsable input
// yields an invalid report with the fixed invalid-URL score.
func (a *URLAnalyzer) Inspect(raw string) URLReport {
	report := URLReport{Input: raw, Normalized: NormalizeURL(raw)}

	u, err := url.Parse(report.Normalized)
	if err != nil || report.Normalized == "" || u.Hostname() == "" || !webSchemes[strings.ToLower(u.Scheme)] {
		report.Findings = []URLFinding{{Key: PatternInvalidURL, Points: models.InvalidURLScore}}
		report.Score = models.InvalidURLScore
		return report
	}
	report.Valid = true

	comp := Breakdown(u)
	report.Components = comp
	host := comp.FullHost
	lowered := strings.ToLower(report.Normalized)

	add := func(key string, points int, brand string) {
		report.Findings = append(report.Findings, URLFinding{Key: key, Points: points, Brand: brand})
	}

	if !strings.EqualFold(u.Scheme, "https") {
		add(PatternNoHTTPS, NoHTTPSPoints, "")
	}
	if comp.IsIPLiteral {
		add(PatternIPAddress, IPHostPoints, "")
	} else if a.suspiciousTLDs[lastLabel(host)] {
		add(PatternSuspiciousTLD, SuspiciousTLDPoints, "")
	}
	if len(report.Normalized) > LongURLThreshold {
		add(PatternURLTooLong, LongURLPoints, "")
	}
	if a.keywords.any(strings.TrimPrefix(lowered, strings.ToLower(u.Scheme)+"://")) {
		add(PatternPhishingKeyword, PhishingKeywordPoints, "")
	}
	if !comp.IsIPLiteral {
		if labelCount(comp.Subdomain) > MaxSubdomainCount {
			add(PatternExcessiveSubdomains, SubdomainCountPoints, "")
		}
		if strings.Contains(host, "-") {
			add(PatternHyphenatedDomain, HyphenatedHostPoints, "")
		}
		if a.hasDoubleTLD(comp) {
			add(PatternDoubleTLD, DoubleTLDPoints, "")
		}
		if brand := a.brandInSubdomain(comp); brand != "" {
			add(PatternSubdomainBrand, BrandInSubdomainPoints, brand)
		}
		if strings.Contains(host, "xn--") {
			add(PatternPunycode, 0, "")
		}
	}
	if encodedCharPattern.MatchString(report.Normalized) {
		add(PatternEncodedChars, 0, "")
	}
	if comp.Port != "" && comp.Port != "80" && comp.Port != "443" {
		add(PatternPortNumber, 0, "")
	}

	total := 0
	for _, f := range report.Findings {
		total += f.Points
	}
	report.Score = models.ClampScore(total)
	return report
}

// hasDoubleTLD reports whether the label directly left of the public
// suffix is itself a generic TLD, e.g. google.com.com or paypal.com.tk.
// Generic words elsewhere in the host (net.example.com) do not count.
func (a *URLAnalyzer) hasDoubleTLD(comp *models.URLComponents) bool {
	return comp.TLD != "" && comp.Domain != comp.FullHost && a.doubleTLDs[comp.Domain]
}

// brandInSubdomain returns the first known brand that is a whole word of
// the subdomain, split on dots, hyphens and digits, while the registered
// domain does not carry it.
func (a *URLAnalyzer) brandInSubdomain(comp *models.URLComponents) string {
	if comp.Subdomain == "" {
		return ""
	}
	words := make(map[string]bool)
	for _, w := range strings.FieldsFunc(comp.Subdomain, func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		words[w] = true
	}
	for _, brand := range a.brands {
		if words[brand] && !strings.Contains(comp.RegisteredDomain, brand) {
			return brand
		}
	}
	return ""
}

// Breakdown splits the host of u into subdomain, registered domain and
// public suffix. Only ICANN suffixes count, so hosting platforms such as
// herokuapp.com do not hide the subdomain.
func Breakdown(u *url.URL) *models.URLComponents {
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	comp := &models.URLComponents{
		FullHost: host,
		Path:     path,
		Port:     u.Port(),
	}

	if ip := net.ParseIP(host); ip != nil {
		comp.IsIPLiteral = true
		comp.Domain = host
		comp.RegisteredDomain = host
		return comp
	}

	suffix := icannSuffix(host)
	comp.TLD = suffix
	if host == suffix || !strings.HasSuffix(host, "."+suffix) {
		comp.Domain = host
		comp.RegisteredDomain = host
		return comp
	}

	rest := strings.TrimSuffix(host, "."+suffix)
	labels := strings.Split(rest, ".")
	comp.Domain = labels[len(labels)-1]
	comp.RegisteredDomain = comp.Domain + "." + suffix
	comp.Subdomain = strings.Join(labels[:len(labels)-1], ".")
	return comp
}

// icannSuffix returns the longest ICANN public suffix of host, dropping
// privately registered suffixes
func icannSuffix(host string) string {
	candidate := host
	for {
		suffix, icann := publicsuffix.PublicSuffix(candidate)
		if icann || !strings.Contains(suffix, ".") {
			return suffix
		}
		// private suffix like "herokuapp.com": retry on its parent
		candidate = suffix[strings.Index(suffix, ".")+1:]
	}
}

func lastLabel(host string) string {
	if i := strings.LastIndex(host, "."); i >= 0 {
		return host[i+1:]
	}
	return host
}

func labelCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, ".") + 1
}

// Analyze scores raw and renders the result in English
func (a *URLAnalyzer) Analyze(raw string) *models.ScanResult {
	return a.AnalyzeLocalized(raw, i18n.English)
}

// AnalyzeLocalized scores raw and renders signals, pattern names and advice
// in lang
func (a *URLAnalyzer) AnalyzeLocalized(raw string, lang i18n.Lang) *models.ScanResult {
	report := a.Inspect(raw)

	result := &models.ScanResult{
		RawInput:       raw,
		InputType:      models.ScanKindURL,
		Source:         models.ScanSourceLocal,
		MatchedSignals: report.Reasons(lang),
		AttackPatterns: report.PatternNames(lang),
		Breakdown:      report.Components,
		ScannedAt:      time.Now().UTC(),
	}
	result.ApplyScore(report.Score)

	switch {
	case !report.Valid:
		result.MatchedCategory = i18n.T(lang, PatternInvalidURL)
	case len(result.AttackPatterns) == 0:
		result.MatchedCategory = models.CategorySafe
		result.MatchedSignals = []string{i18n.T(lang, "signal_no_patterns")}
	default:
		result.MatchedCategory = result.AttackPatterns[0]
	}

	result.SuggestedAction = SuggestedAction(lang, result.Tier)
	result.Explanation = report.Explanation(lang, result.Tier)
	result.SafetyTip = report.SafetyTip(lang)
	result.Suggestions = []string{result.SafetyTip, i18n.T(lang, "tip_general")}
	if result.SafetyTip == result.Suggestions[1] {
		result.Suggestions = result.Suggestions[:1]
	}
	return result
}

// Keys returns the triggered pattern keys in check order
func (r URLReport) Keys() []string {
	keys := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		keys = append(keys, f.Key)
	}
	return keys
}

// PatternNames returns the localized, de-duplicated attack pattern names
func (r URLReport) PatternNames(lang i18n.Lang) []string {
	var names []string
	seen := make(map[string]bool)
	for _, f := range r.Findings {
		name := i18n.T(lang, f.Key)
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// Reasons returns one localized sentence per finding
func (r URLReport) Reasons(lang i18n.Lang) []string {
	reasons := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		reasons = append(reasons, i18n.T(lang, "reason_"+f.Key))
	}
	return reasons
}

// Explanation summarizes the verdict, naming an impersonated brand if any
func (r URLReport) Explanation(lang i18n.Lang, tier models.RiskTier) string {
	switch tier {
	case models.RiskTierHighRisk:
		brand := i18n.T(lang, "explanation_brand_fallback")
		for _, f := range r.Findings {
			if f.Brand != "" {
				brand = strings.ToUpper(f.Brand[:1]) + f.Brand[1:]
				break
			}
		}
		return i18n.Format(lang, "explanation_malicious", map[string]string{"brand": brand})
	case models.RiskTierSuspicious:
		return i18n.T(lang, "explanation_suspicious")
	default:
		return i18n.T(lang, "explanation_safe")
	}
}

var tipPriority = []struct {
	pattern string
	tip     string
}{
	{PatternDoubleTLD, "tip_double_tld"},
	{PatternSubdomainBrand, "tip_brand_subdomain"},
	{PatternIPAddress, "tip_ip_address"},
	{PatternNoHTTPS, "tip_no_https"},
}

// SafetyTip picks the tip for the most telling finding
func (r URLReport) SafetyTip(lang i18n.Lang) string {
	if len(r.Findings) == 0 {
		return i18n.T(lang, "tip_verify")
	}
	for _, p := range tipPriority {
		for _, f := range r.Findings {
			if f.Key == p.pattern {
				return i18n.T(lang, p.tip)
			}
		}
	}
	return i18n.T(lang, "tip_general")
}
