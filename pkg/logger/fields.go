package logger

// Shared log field names, keep these stable so log queries stay simple.
const (
	// FieldUID owner user id
	FieldUID = "uid"

	// FieldEntryID journal entry id
	FieldEntryID = "entryId"

	// FieldAction mutation type
	FieldAction = "action"

	// FieldDuration elapsed time
	FieldDuration = "duration"

	// FieldMethod method name
	FieldMethod = "method"

	// FieldError error message
	FieldError = "error"

	// FieldSize payload size in bytes
	FieldSize = "size"

	// FieldMediaKind media attachment kind
	FieldMediaKind = "mediaKind"

	// FieldFileKey asset host object key
	FieldFileKey = "fileKey"

	// FieldBucket asset host bucket
	FieldBucket = "bucket"
)
