package response

// Messages and codes for the standard response envelope.
const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong. Please try again later."

	InternalServerErrorCode = 500
)

// DateTimeFormat is the layout of the envelope timestamp.
const DateTimeFormat = "2006-01-02 15:04:05"
