package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldPeriodID    = "period_id"
	FieldPeriodName  = "period_name"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldDate        = "date"
	FieldFromStation = "from_station"
	FieldToStation   = "to_station"
	FieldTripCount   = "trip_count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentStore   = "store"
	ComponentBudget  = "budget"
	ComponentFare    = "fare"
	ComponentTrips   = "trips"
	ComponentExport  = "export"
	ComponentStorage = "storage"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpList     = "list"
	OpArchive  = "archive"
	OpSummary  = "summary"
	OpExport   = "export"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
