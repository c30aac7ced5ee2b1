package domain

import "strconv"

// Code is a business result code. Codes in the standard HTTP range double as
// the response status; domain codes (>= 800) ride inside a 200 envelope.
type Code int

const (
	CodeOK Code = 200

	CodeUnauthorized        Code = 401
	CodeForbidden           Code = 403
	CodeNotFound            Code = 404
	CodeMethodNotAllowed    Code = 405
	CodeTooManyRequests     Code = 429
	CodeInternalServerError Code = 500

	// Request shape errors.
	CodeMissingHeader Code = 900
	CodeMissingParam  Code = 901
	CodeIllegalParam  Code = 902

	// Folders.
	CodeFolderParentNotExist Code = 3101
	CodeFolderNotExist       Code = 3102
	CodeFolderNotEmpty       Code = 3103
	CodeFolderMoveToSelf     Code = 3104

	// Apps.
	CodeAppFolderNotExist Code = 3201
	CodeAppNotExist       Code = 3202
	CodeAppDraftNotExist  Code = 3203

	// Workspaces.
	CodeWorkspaceCurrentCannotDelete Code = 3301
	CodeWorkspaceNotSelected         Code = 3302
	CodeWorkspaceNotExist            Code = 3303

	// Tags.
	CodeTagNotExist Code = 3401
)

func (c Code) Int() int { return int(c) }

func (c Code) String() string { return strconv.Itoa(int(c)) }

// HTTPStatus maps the code onto an HTTP status. Domain codes outside the
// valid status range respond 200 and keep the code in the envelope body.
func (c Code) HTTPStatus() int {
	if c >= 100 && c <= 599 {
		return int(c)
	}
	return 200
}
