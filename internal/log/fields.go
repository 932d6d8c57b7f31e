package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldClientIP  = "client_ip"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldOperation = "operation"

	FieldChatID   = "chat_id"
	FieldUserID   = "user_id"
	FieldPeriod   = "period"
	FieldCategory = "category"
	FieldItem     = "item"
	FieldPrice    = "price"
	FieldRow      = "row"
	FieldColumn   = "column"
	FieldBackend  = "backend"
	FieldQueue    = "queue"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentBot      = "bot"
	ComponentLedger   = "ledger"
	ComponentRegistry = "registry"
	ComponentRowstore = "rowstore"
	ComponentAMQP     = "amqp"
	ComponentWorker   = "worker"
	ComponentBackend  = "backend"
)
