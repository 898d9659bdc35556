package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXUserID       = "X-User-ID"
	HeaderXUserRole     = "X-User-Role"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypePNG  = "image/png"

	// Context keys
	ContextKeyActorID   = "actor_id"
	ContextKeyActorRole = "actor_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers           = "users"
	TableTickets         = "tickets"
	TableCostEstimations = "cost_estimations"
	TableWorkOrders      = "work_orders"
	TableApprovalRecords = "approval_records"
	TableQRScanTokens    = "qr_scan_tokens"
	TableAuditEntries    = "audit_entries"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
