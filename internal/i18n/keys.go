// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthAccountDisabled    = "auth.account_disabled"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Users
	KeyUserNotFound = "user.not_found"

	// Catalog
	KeyProductNotFound  = "product.not_found"
	KeyProductCreated   = "product.created"
	KeyProductUpdated   = "product.updated"
	KeyProductDisabled  = "product.disabled"
	KeyCategoryNotFound = "category.not_found"
	KeyBannerNotFound   = "banner.not_found"
	KeyReviewCreated    = "review.created"

	// Cart
	KeyCartNotFound         = "cart.not_found"
	KeyCartItemNotFound     = "cart_item.not_found"
	KeyCartProductRequired  = "cart.product_required"
	KeyCartQuantityRequired = "cart.quantity_required"

	// Orders
	KeyOrderNotFound      = "order.not_found"
	KeyOrderSourceMissing = "order.source_required"
	KeyOrderTokenRequired = "order.token_required"
	KeyOrderInvalidCart   = "order.invalid_cart"
	KeyOrderInvalidStatus = "order.invalid_status"

	// Payments
	KeyPaymentSuccess   = "payment.success"
	KeyPaymentFailed    = "payment.failed"
	KeyPaymentPending   = "payment.pending"
	KeyPaymentDisabled  = "payment.disabled"
	KeyPaymentNotOnline = "payment.not_online"

	// Content
	KeyContentNotFound  = "content.not_found"
	KeyMegaMenuNotFound = "mega_menu.not_found"
	KeyContactReceived  = "contact.received"

	// Admin
	KeyAdminActionSuccess = "admin.action_success"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// Rate limiting
	KeyRateLimited = "rate_limit.exceeded"
)
