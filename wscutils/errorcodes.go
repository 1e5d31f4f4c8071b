package wscutils

// Status values used in the standard response envelope.
const (
	SuccessStatus = "success"
	ErrorStatus   = "error"
)

// Error codes used across the web services.
const (
	ErrcodeUnknown        = "unknown"
	ErrcodeInvalidRequest = "invalid_request"
	ErrcodeInvalidJson    = "invalid_json"
	ErrcodeSourceRead     = "source_read"
	ErrcodeSinkWrite      = "sink_write"
)

// DefaultMsgID is used for validation errors without a registered type.
const DefaultMsgID = 9999
