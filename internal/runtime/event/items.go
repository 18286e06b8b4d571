package event

import "math"

// Item is a structural record describing one line item in an e-commerce
// event. Items have no identity beyond structural equality and are consumed
// by value when building event parameter bags.
type Item struct {
	ItemID   string  `json:"item_id,omitempty"`
	ItemName string  `json:"item_name,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Quantity int     `json:"quantity,omitempty"`

	Brand     string `json:"item_brand,omitempty"`
	Category  string `json:"item_category,omitempty"`
	Category2 string `json:"item_category2,omitempty"`
	Category3 string `json:"item_category3,omitempty"`
	Category4 string `json:"item_category4,omitempty"`
	Category5 string `json:"item_category5,omitempty"`
	Variant   string `json:"item_variant,omitempty"`

	ListID     string `json:"item_list_id,omitempty"`
	ListName   string `json:"item_list_name,omitempty"`
	LocationID string `json:"location_id,omitempty"`

	PromotionID   string `json:"promotion_id,omitempty"`
	PromotionName string `json:"promotion_name,omitempty"`
	CreativeName  string `json:"creative_name,omitempty"`
	CreativeSlot  string `json:"creative_slot,omitempty"`

	Coupon      string  `json:"coupon,omitempty"`
	Discount    float64 `json:"discount,omitempty"`
	Index       int     `json:"index,omitempty"`
	Affiliation string  `json:"affiliation,omitempty"`
}

// RoundPrice rounds a price half-up to two decimal places.
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}

// Normalize returns a copy of the item with the uniform normalization rules
// applied: quantity defaults to 1 when not positive, price is rounded to two
// decimals, everything else passes through unmodified.
func (i Item) Normalize() Item {
	out := i
	if out.Quantity <= 0 {
		out.Quantity = 1
	}
	out.Price = RoundPrice(out.Price)
	return out
}

// NormalizeItems applies Normalize to every item and returns the new slice.
// The input slice is not modified.
func NormalizeItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for n, item := range items {
		out[n] = item.Normalize()
	}
	return out
}

// ItemsParams converts a normalized item list into the parameter
// representation dispatched under the "items" key.
func ItemsParams(items []Item) []map[string]any {
	out := make([]map[string]any, len(items))
	for n, item := range items {
		out[n] = item.params()
	}
	return out
}

func (i Item) params() map[string]any {
	p := map[string]any{
		"price":    i.Price,
		"quantity": i.Quantity,
	}
	setIfNotEmpty := func(key, value string) {
		if value != "" {
			p[key] = value
		}
	}
	setIfNotEmpty("item_id", i.ItemID)
	setIfNotEmpty("item_name", i.ItemName)
	setIfNotEmpty("item_brand", i.Brand)
	setIfNotEmpty("item_category", i.Category)
	setIfNotEmpty("item_category2", i.Category2)
	setIfNotEmpty("item_category3", i.Category3)
	setIfNotEmpty("item_category4", i.Category4)
	setIfNotEmpty("item_category5", i.Category5)
	setIfNotEmpty("item_variant", i.Variant)
	setIfNotEmpty("item_list_id", i.ListID)
	setIfNotEmpty("item_list_name", i.ListName)
	setIfNotEmpty("location_id", i.LocationID)
	setIfNotEmpty("promotion_id", i.PromotionID)
	setIfNotEmpty("promotion_name", i.PromotionName)
	setIfNotEmpty("creative_name", i.CreativeName)
	setIfNotEmpty("creative_slot", i.CreativeSlot)
	setIfNotEmpty("coupon", i.Coupon)
	setIfNotEmpty("affiliation", i.Affiliation)
	if i.Discount != 0 {
		p["discount"] = i.Discount
	}
	if i.Index != 0 {
		p["index"] = i.Index
	}
	return p
}
