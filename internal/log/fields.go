package log

// Standard field names so log entries stay grep-able across components.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldRequestID = "request_id"

	FieldTicker      = "ticker"
	FieldRecordID    = "record_id"
	FieldSector      = "sector"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldVersion     = "version"
	FieldRecordCount = "record_count"
	FieldSkipped     = "skipped"
	FieldFilterKey   = "filter_key"

	FieldMethod = "method"
	FieldPath   = "path"
	FieldStatus = "status"
	FieldPort   = "port"

	FieldQueue    = "queue"
	FieldExchange = "exchange"
	FieldReason   = "reason"

	FieldBackend = "backend"
	FieldDBPath  = "db_path"
	FieldSheet   = "sheet"
)

// Component names.
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentCatalog = "catalog"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)
