package models

// ScamCategory is a named scam pattern defined by a keyword set
type ScamCategory struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Keywords []string `json:"keywords"`
	Tips     []string `json:"tips"`
}

// MinCategoryMatches is the number of distinct keywords a text must contain
// before a category is considered at all
const MinCategoryMatches = 2
