// Package rest holds the constant tables shared by the toolkit's REST-facing
// callers: header names, content types, and the route fragments under which
// the host application mounts notification resources.
package rest

// Header names.
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
	HeaderUserID        = "X-User-ID"
)

// Content types.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Route fragments, relative to the host API base path.
const (
	PathTasks         = "/tasks"
	PathNotifications = "/notifications"
	PathRecipients    = "/recipients"
)

// Query parameter names.
const (
	ParamTaskID = "taskId"
	ParamLimit  = "limit"
	ParamCursor = "cursor"
)

// DefaultHeaders returns the headers every outbound toolkit request carries.
// The returned map is a fresh copy the caller may mutate.
func DefaultHeaders() map[string]string {
	return map[string]string{
		HeaderAccept:      ContentTypeJSON,
		HeaderContentType: ContentTypeJSON,
	}
}
