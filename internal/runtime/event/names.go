package event

// Fixed event-name vocabulary. Tracking methods emit these names; custom
// events may use any name that passes validate.EventName.
const (
	NamePageView       = "page_view"
	NameSearch         = "search"
	NameLogin          = "login"
	NameSignUp         = "sign_up"
	NameShare          = "share"
	NameSelectContent  = "select_content"
	NameUserEngagement = "user_engagement"

	NameViewItem     = "view_item"
	NameViewItemList = "view_item_list"
	NameSelectItem   = "select_item"

	NameAddToCart      = "add_to_cart"
	NameRemoveFromCart = "remove_from_cart"
	NameViewCart       = "view_cart"
	NameUpdateCart     = "update_cart"

	NameAddToWishlist      = "add_to_wishlist"
	NameRemoveFromWishlist = "remove_from_wishlist"
	NameViewWishlist       = "view_wishlist"
	NameUpdateWishlist     = "update_wishlist"

	NameBeginCheckout   = "begin_checkout"
	NameAddShippingInfo = "add_shipping_info"
	NameAddPaymentInfo  = "add_payment_info"
	NamePurchase        = "purchase"
	NameRefund          = "refund"

	NameViewPromotion   = "view_promotion"
	NameSelectPromotion = "select_promotion"

	NameException      = "exception"
	NameTimingComplete = "timing_complete"

	NameVideoStart    = "video_start"
	NameVideoProgress = "video_progress"
	NameVideoComplete = "video_complete"
)
