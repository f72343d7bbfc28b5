package category

// Category is one of the fixed spending categories every expense and budget
// is tagged with. The set is closed: aggregations iterate exactly this list,
// in this order.
type Category string

const (
	FoodGroceries         Category = "Food & Groceries"
	ShoppingEntertainment Category = "Shopping & Entertainment"
	HousingRent           Category = "Housing & Rent"
	Transport             Category = "Transport"
	HealthPersonal        Category = "Health & Personal"
)

var all = []Category{
	FoodGroceries,
	ShoppingEntertainment,
	HousingRent,
	Transport,
	HealthPersonal,
}

// All returns the fixed categories in declaration order. The order doubles as
// the tie-break order for ranked selections, so it must stay stable.
func All() []Category {
	result := make([]Category, len(all))
	copy(result, all)
	return result
}

func IsValid(c string) bool {
	for _, known := range all {
		if Category(c) == known {
			return true
		}
	}
	return false
}
