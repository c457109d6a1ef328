package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
)

// Validation limits
const (
	MinPasswordLength    = 6
	MinTitleLength       = 3
	MinDescriptionLength = 10
	MinTeamNameLength    = 2
	MaxTeamNameLength    = 50
)

// Team admission
const (
	JoinCodeLength      = 6
	JoinCodeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	MaxJoinCodeAttempts = 10
	MinTeamMembers      = 2
	MaxTeamMembers      = 100
	DefaultTeamMembers  = 3
)

// Uploads
const (
	MaxUploadSize = 5 << 20 // 5 MB
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
