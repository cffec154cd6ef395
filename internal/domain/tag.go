package domain

import (
	"fmt"
	"strings"
)

// TagCategory is the closed set of badge kinds a job can carry.
type TagCategory string

const (
	TagNew      TagCategory = "new"
	TagFeatured TagCategory = "featured"
	TagDirect   TagCategory = "direct"
	TagReferral TagCategory = "referral"
)

// TagCategories lists every category in display order.
var TagCategories = []TagCategory{TagNew, TagFeatured, TagDirect, TagReferral}

type Tag struct {
	Label    string      `json:"text" yaml:"text"`
	Category TagCategory `json:"type" yaml:"type"`
}

func (c TagCategory) Valid() bool {
	for _, k := range TagCategories {
		if c == k {
			return true
		}
	}
	return false
}

func ParseTagCategory(s string) (TagCategory, error) {
	c := TagCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown tag category %q", s)
	}
	return c, nil
}

func categoryList() string {
	names := make([]string, len(TagCategories))
	for i, c := range TagCategories {
		names[i] = string(c)
	}
	return "{" + strings.Join(names, ", ") + "}"
}
