package models

type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Categories is the fixed catalog taxonomy, in display order.
var Categories = []Category{
	{Name: "Собаки", Slug: "dogs"},
	{Name: "Кошки", Slug: "cats"},
	{Name: "Птицы", Slug: "birds"},
	{Name: "Рыбы", Slug: "fish"},
	{Name: "Грызуны", Slug: "small_pets"},
}

func IsCategory(name string) bool {
	for _, c := range Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CategoryBySlug resolves a slug such as "small_pets" to its category.
func CategoryBySlug(slug string) (Category, bool) {
	for _, c := range Categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return Category{}, false
}
