package runtime

import (
	"context"
	"strings"

	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	eventpkg "github.com/drblury/tagflow/internal/runtime/event"
)

// commerceParams builds the shared parameter bag of every e-commerce event:
// the normalized item list, the effective currency, and the rounded value.
func (t *Tracker) commerceParams(items []eventpkg.Item, value float64, currency string) map[string]any {
	params := map[string]any{
		"items":    eventpkg.ItemsParams(eventpkg.NormalizeItems(items)),
		"currency": t.currency(currency),
	}
	if value != 0 {
		params["value"] = eventpkg.RoundPrice(value)
	}
	return params
}

// ViewItem describes a product detail view.
type ViewItem struct {
	Items    []eventpkg.Item
	Value    float64
	Currency string
}

// TrackViewItem reports a view_item event.
func (t *Tracker) TrackViewItem(ctx context.Context, in ViewItem, opts ...TrackOption) error {
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	params := t.commerceParams(in.Items, in.Value, in.Currency)
	t.track(ctx, eventpkg.NameViewItem, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// ItemList describes a product list impression or selection.
type ItemList struct {
	Items    []eventpkg.Item
	ListID   string
	ListName string
}

// TrackViewItemList reports a view_item_list event.
func (t *Tracker) TrackViewItemList(ctx context.Context, in ItemList, opts ...TrackOption) error {
	return t.trackItemList(ctx, eventpkg.NameViewItemList, in, opts)
}

// TrackSelectItem reports a select_item event.
func (t *Tracker) TrackSelectItem(ctx context.Context, in ItemList, opts ...TrackOption) error {
	return t.trackItemList(ctx, eventpkg.NameSelectItem, in, opts)
}

func (t *Tracker) trackItemList(ctx context.Context, name string, in ItemList, opts []TrackOption) error {
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	params := map[string]any{
		"items": eventpkg.ItemsParams(eventpkg.NormalizeItems(in.Items)),
	}
	if in.ListID != "" {
		params["item_list_id"] = in.ListID
	}
	if in.ListName != "" {
		params["item_list_name"] = in.ListName
	}
	t.track(ctx, name, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// CartAction discriminates the cart event family.
type CartAction string

const (
	CartActionAdd    CartAction = "add"
	CartActionRemove CartAction = "remove"
	CartActionView   CartAction = "view"
	CartActionUpdate CartAction = "update"
)

// Cart describes a shopping cart change.
type Cart struct {
	Action   CartAction
	Items    []eventpkg.Item
	Value    float64
	Currency string
	Coupon   string
}

// TrackCart reports an add_to_cart, remove_from_cart, view_cart, or
// update_cart event. Cart events require items and a non-zero value.
func (t *Tracker) TrackCart(ctx context.Context, in Cart, opts ...TrackOption) error {
	var name string
	switch in.Action {
	case CartActionAdd:
		name = eventpkg.NameAddToCart
	case CartActionRemove:
		name = eventpkg.NameRemoveFromCart
	case CartActionView:
		name = eventpkg.NameViewCart
	case CartActionUpdate:
		name = eventpkg.NameUpdateCart
	default:
		return errspkg.UnsupportedActionError{Kind: "cart", Value: string(in.Action)}
	}
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	if in.Value == 0 {
		return errspkg.ErrValueRequired
	}

	params := t.commerceParams(in.Items, in.Value, in.Currency)
	if in.Coupon != "" {
		params["coupon"] = in.Coupon
	}
	t.track(ctx, name, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// WishlistAction discriminates the wishlist event family.
type WishlistAction string

const (
	WishlistActionAdd    WishlistAction = "add"
	WishlistActionRemove WishlistAction = "remove"
	WishlistActionView   WishlistAction = "view"
	WishlistActionUpdate WishlistAction = "update"
)

// Wishlist describes a wishlist change. Value is a pointer because zero is a
// legitimate wishlist value; only an absent value is rejected.
type Wishlist struct {
	Action   WishlistAction
	Items    []eventpkg.Item
	Value    *float64
	Currency string
}

// TrackWishlist reports an add_to_wishlist, remove_from_wishlist,
// view_wishlist, or update_wishlist event.
func (t *Tracker) TrackWishlist(ctx context.Context, in Wishlist, opts ...TrackOption) error {
	var name string
	switch in.Action {
	case WishlistActionAdd:
		name = eventpkg.NameAddToWishlist
	case WishlistActionRemove:
		name = eventpkg.NameRemoveFromWishlist
	case WishlistActionView:
		name = eventpkg.NameViewWishlist
	case WishlistActionUpdate:
		name = eventpkg.NameUpdateWishlist
	default:
		return errspkg.UnsupportedActionError{Kind: "wishlist", Value: string(in.Action)}
	}
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	if in.Value == nil {
		return errspkg.ErrValueRequired
	}

	params := map[string]any{
		"items":    eventpkg.ItemsParams(eventpkg.NormalizeItems(in.Items)),
		"currency": t.currency(in.Currency),
		"value":    eventpkg.RoundPrice(*in.Value),
	}
	t.track(ctx, name, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// BeginCheckout describes the start of a checkout.
type BeginCheckout struct {
	Items    []eventpkg.Item
	Value    float64
	Currency string
	Coupon   string
}

// TrackBeginCheckout reports a begin_checkout event. It validates like the
// rest of the checkout funnel: items and a non-zero value are required.
func (t *Tracker) TrackBeginCheckout(ctx context.Context, in BeginCheckout, opts ...TrackOption) error {
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	if in.Value == 0 {
		return errspkg.ErrValueRequired
	}

	params := t.commerceParams(in.Items, in.Value, in.Currency)
	if in.Coupon != "" {
		params["coupon"] = in.Coupon
	}
	t.track(ctx, eventpkg.NameBeginCheckout, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// ShippingInfo describes the shipping step of a checkout.
type ShippingInfo struct {
	Items        []eventpkg.Item
	Value        float64
	Currency     string
	ShippingTier string
	Coupon       string
}

// TrackShippingInfo reports an add_shipping_info event.
func (t *Tracker) TrackShippingInfo(ctx context.Context, in ShippingInfo, opts ...TrackOption) error {
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	if in.Value == 0 {
		return errspkg.ErrValueRequired
	}

	params := t.commerceParams(in.Items, in.Value, in.Currency)
	if in.ShippingTier != "" {
		params["shipping_tier"] = in.ShippingTier
	}
	if in.Coupon != "" {
		params["coupon"] = in.Coupon
	}
	t.track(ctx, eventpkg.NameAddShippingInfo, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// PaymentInfo describes the payment step of a checkout.
type PaymentInfo struct {
	Items       []eventpkg.Item
	Value       float64
	Currency    string
	PaymentType string
	Coupon      string
}

// TrackPaymentInfo reports an add_payment_info event.
func (t *Tracker) TrackPaymentInfo(ctx context.Context, in PaymentInfo, opts ...TrackOption) error {
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	if in.Value == 0 {
		return errspkg.ErrValueRequired
	}

	params := t.commerceParams(in.Items, in.Value, in.Currency)
	if in.PaymentType != "" {
		params["payment_type"] = in.PaymentType
	}
	if in.Coupon != "" {
		params["coupon"] = in.Coupon
	}
	t.track(ctx, eventpkg.NameAddPaymentInfo, params, eventpkg.CategoryEcommerce, opts)
	return nil
}

// Purchase describes a completed transaction.
type Purchase struct {
	TransactionID string
	Value         float64
	Currency      string
	Items         []eventpkg.Item
	Tax           float64
	Shipping      float64
	Coupon        string
	Affiliation   string
}

// TrackPurchase reports a purchase event. A transaction id and a positive
// value are required.
func (t *Tracker) TrackPurchase(ctx context.Context, in Purchase, opts ...TrackOption) error {
	if strings.TrimSpace(in.TransactionID) == "" {
		return errspkg.ErrTransactionIDRequired
	}
	if in.Value <= 0 {
		return errspkg.ErrValueRequired
	}

	params := t.commerceParams(in.Items, in.Value, in.Currency)
	params["transaction_id"] = in.TransactionID
	if in.Tax != 0 {
		params["tax"] = eventpkg.RoundPrice(in.Tax)
	}
	if in.Shipping != 0 {
		params["shipping"] = eventpkg.RoundPrice(in.Shipping)
	}
	if in.Coupon != "" {
		params["coupon"] = in.Coupon
	}
	if in.Affiliation != "" {
		params["affiliation"] = in.Affiliation
	}
	t.track(ctx, eventpkg.NamePurchase, params, eventpkg.CategoryConversion, opts)
	return nil
}

// Refund describes a refunded transaction.
type Refund struct {
	TransactionID string
	Value         float64
	Currency      string
	Items         []eventpkg.Item
}

// TrackRefund reports a refund event under the same contract as purchase.
func (t *Tracker) TrackRefund(ctx context.Context, in Refund, opts ...TrackOption) error {
	if strings.TrimSpace(in.TransactionID) == "" {
		return errspkg.ErrTransactionIDRequired
	}
	if in.Value <= 0 {
		return errspkg.ErrValueRequired
	}

	params := t.commerceParams(in.Items, in.Value, in.Currency)
	params["transaction_id"] = in.TransactionID
	t.track(ctx, eventpkg.NameRefund, params, eventpkg.CategoryConversion, opts)
	return nil
}

// PromotionAction discriminates the promotion event family.
type PromotionAction string

const (
	PromotionActionView   PromotionAction = "view"
	PromotionActionSelect PromotionAction = "select"
)

// Promotion describes an internal promotion impression or selection.
type Promotion struct {
	Action        PromotionAction
	Items         []eventpkg.Item
	CreativeName  string
	CreativeSlot  string
	PromotionID   string
	PromotionName string
	LocationID    string
}

// TrackPromotion reports a view_promotion or select_promotion event. Items
// and a creative name are required.
func (t *Tracker) TrackPromotion(ctx context.Context, in Promotion, opts ...TrackOption) error {
	var name string
	switch in.Action {
	case PromotionActionView:
		name = eventpkg.NameViewPromotion
	case PromotionActionSelect:
		name = eventpkg.NameSelectPromotion
	default:
		return errspkg.UnsupportedActionError{Kind: "promotion", Value: string(in.Action)}
	}
	if len(in.Items) == 0 {
		return errspkg.ErrItemsRequired
	}
	if strings.TrimSpace(in.CreativeName) == "" {
		return errspkg.ErrCreativeNameRequired
	}

	params := map[string]any{
		"items":         eventpkg.ItemsParams(eventpkg.NormalizeItems(in.Items)),
		"creative_name": in.CreativeName,
	}
	if in.CreativeSlot != "" {
		params["creative_slot"] = in.CreativeSlot
	}
	if in.PromotionID != "" {
		params["promotion_id"] = in.PromotionID
	}
	if in.PromotionName != "" {
		params["promotion_name"] = in.PromotionName
	}
	if in.LocationID != "" {
		params["location_id"] = in.LocationID
	}
	t.track(ctx, name, params, eventpkg.CategoryEcommerce, opts)
	return nil
}
