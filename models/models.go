package models

// All lists every table the API persists, in migration order.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Product{}, &ProductImage{},
		&Accessory{}, &AccessoryImage{},
		&Part{}, &PartImage{},
		&CartItem{},
		&Order{}, &OrderItem{},
		&Payment{},
		&Coupon{}, &Sale{},
		&Review{}, &AccessoryReview{},
		&CustomBuild{},
	}
}
