package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldRecordID   = "record_id"
	FieldAmount     = "amount"
	FieldBudgetName = "budget_name"
	FieldCategory   = "category"
	FieldRangeStart = "range_start"
	FieldRangeEnd   = "range_end"
	FieldBucket     = "bucket"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentStorage   = "storage"
	ComponentAuth      = "auth"
	ComponentReport    = "report"
	ComponentRateLimit = "rate_limit"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpBulk     = "bulk_upsert"
	OpLogin    = "login"
	OpLogout   = "logout"
	OpRegister = "register"
	OpSummary  = "summary"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
