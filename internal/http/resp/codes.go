package resp

// Machine-readable codes carried in JSON error and status bodies.
const (
	CodeBadRequest    = "bad_request"
	CodeInvalidID     = "invalid_id"
	CodeInternalError = "internal_error"
	CodeQueued        = "queued"
)
