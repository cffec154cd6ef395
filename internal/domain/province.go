package domain

import (
	"strings"

	"iranconnect-web/internal/util"
)

type Province struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`  // english
	Label string `json:"label"` // persian
}

// Provinces are the ones linked from the landing page, in display order.
var Provinces = []Province{
	{Slug: "ontario", Name: "Ontario", Label: "انتاریو"},
	{Slug: "quebec", Name: "Quebec", Label: "کبک"},
	{Slug: "british-columbia", Name: "British Columbia", Label: "بریتیش کلمبیا"},
	{Slug: "alberta", Name: "Alberta", Label: "آلبرتا"},
	{Slug: "manitoba", Name: "Manitoba", Label: "مانیتوبا"},
}

func LookupProvince(slug string) (Province, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, p := range Provinces {
		if p.Slug == slug {
			return p, true
		}
	}
	return Province{}, false
}

// Matches reports whether a free-text location names this province.
func (p Province) Matches(location string) bool {
	return util.ContainsFolded(location, p.Label) || util.ContainsFolded(location, p.Name)
}
