package errors

// Error code constants returned in JSON error responses.
// Format: CATEGORY_SPECIFIC_DETAIL; the frontend maps these to copy.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // bad email/password
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED" // token blacklisted by logout
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"     // old password check failed
	AuthPasswordMismatch   = "AUTH_PASSWORD_MISMATCH"  // new/confirm differ
	AuthPasswordTooShort   = "AUTH_PASSWORD_TOO_SHORT" // below minimum length

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Catalog (CATALOG_) ====================
	CatalogCategoryNotFound    = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogSubCategoryNotFound = "CATALOG_SUBCATEGORY_NOT_FOUND"
	CatalogProductNotFound     = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogCategoryInUse       = "CATALOG_CATEGORY_IN_USE"    // has subcategories or products
	CatalogSubCategoryInUse    = "CATALOG_SUBCATEGORY_IN_USE" // has products
	CatalogSubCategoryMismatch = "CATALOG_SUBCATEGORY_MISMATCH"
	CatalogInvalidPrice        = "CATALOG_INVALID_PRICE"
	CatalogSliderImageNotFound = "CATALOG_SLIDER_IMAGE_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartItemNotFound  = "CART_ITEM_NOT_FOUND"
	CartEmpty         = "CART_EMPTY"
	CartOutOfStock    = "CART_OUT_OF_STOCK"
	CartStockExceeded = "CART_STOCK_EXCEEDED"

	// ==================== Order (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderAddressRequired   = "ORDER_ADDRESS_REQUIRED"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION"
	OrderInsufficientStock = "ORDER_INSUFFICIENT_STOCK"

	// ==================== Address (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"
)
