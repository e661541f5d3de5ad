package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Streamer Operations
const (
	ErrMsgFailedToInsertStreamer = "failed to insert streamer"
	ErrMsgFailedToDeleteStreamer = "failed to delete streamer"
	ErrMsgFailedToClearStreamers = "failed to clear streamers"
	ErrMsgFailedToQueryStreamers = "failed to query streamers"
	ErrMsgFailedToScanStreamers  = "failed to scan streamers"
	ErrMsgFailedToCountStreamers = "failed to count streamers"
)
