package models

import "fmt"

type Category string

const (
	Electronics Category = "Electronics"
	Furniture   Category = "Furniture"
	Apparel     Category = "Apparel"
	Food        Category = "Food"
	Other       Category = "Other"
)

var categories = []Category{Electronics, Furniture, Apparel, Food, Other}

// Categories returns the fixed category set in display order. The first entry
// is the default choice on the create form.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}
