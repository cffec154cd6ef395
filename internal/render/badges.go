package render

import (
	"errors"
	"fmt"

	"iranconnect-web/internal/domain"
)

var ErrUnknownCategory = errors.New("unknown tag category")

// BadgeStyle is the list of CSS classes a badge carries.
type BadgeStyle string

// badgeStyles must hold an entry for every domain.TagCategories value.
var badgeStyles = map[domain.TagCategory]BadgeStyle{
	domain.TagNew:      "bg-[#E6F7F5] text-secondary",
	domain.TagFeatured: "bg-[#FFF4E6] text-accent",
	domain.TagDirect:   "bg-green-100 text-green-800",
	domain.TagReferral: "bg-pink-100 text-pink-800",
}

func StyleFor(c domain.TagCategory) (BadgeStyle, error) {
	s, ok := badgeStyles[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return s, nil
}

type Badge struct {
	Label    string
	Category domain.TagCategory
	Style    BadgeStyle
}

func newBadge(t domain.Tag) (Badge, error) {
	s, err := StyleFor(t.Category)
	if err != nil {
		return Badge{}, err
	}
	return Badge{Label: t.Label, Category: t.Category, Style: s}, nil
}
