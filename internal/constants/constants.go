package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Authentication
const (
	MinPasswordLength = 8
	TokenByteLength   = 32
)

// Task field limits
const (
	TitleMaxLength       = 200
	DescriptionMaxLength = 5000
	CommentMaxLength     = 2000

	PriorityMin     = 1
	PriorityMax     = 5
	PriorityDefault = 3
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Uploads
const (
	MaxUploadBytes = 32 << 20 // 32MB
)
