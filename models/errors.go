package models

// ErrorKind is the machine readable code sent to clients next to the message.
type ErrorKind string

const (
	KindValueInvalid      ErrorKind = "VALUE_INVALID"
	KindValueMissing      ErrorKind = "VALUE_MISSING"
	KindResourceMissing   ErrorKind = "RESOURCE_MISSING"
	KindResourceExisting  ErrorKind = "RESOURCE_EXISTING"
	KindResourcePermanent ErrorKind = "RESOURCE_PERMANENT"
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
)

// Error is a domain error. Sentinels below are compared with errors.Is.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrVersionNumberInvalid        = &Error{KindValueInvalid, "version number must use integers in 'major.minor.patch'"}
	ErrVersionsReadingTokenInvalid = &Error{KindValueInvalid, "page token invalid"}
	ErrVersionReleasedAtInvalid    = &Error{KindValueInvalid, "invalid released at"}
	ErrPageSizeInvalid             = &Error{KindValueInvalid, "page size must be a positive integer"}
	ErrChangeKindInvalid           = &Error{KindValueInvalid, "change kind must be one of added, changed, deprecated, removed, fixed, security"}
	ErrChangeBodyInvalid           = &Error{KindValueInvalid, "change body must have 1 to 1000 characters"}
	ErrChangeAuthorInvalid         = &Error{KindValueInvalid, "change author must have 1 to 30 characters"}
	ErrChangeIDInvalid             = &Error{KindValueInvalid, "change id invalid"}

	ErrProjectNotFound = &Error{KindResourceMissing, "project missing"}
	ErrVersionNotFound = &Error{KindResourceMissing, "version missing"}
	ErrChangeNotFound  = &Error{KindResourceMissing, "change missing"}

	ErrVersionDuplicate     = &Error{KindResourceExisting, "version exists"}
	ErrProjectNameDuplicate = &Error{KindResourceExisting, "project name exists"}

	ErrVersionCannotBeDeleted  = &Error{KindResourcePermanent, "version is released"}
	ErrVersionCannotBeReleased = &Error{KindResourcePermanent, "version is released"}
	ErrVersionReleased         = &Error{KindResourcePermanent, "version is released"}

	ErrInvalidCredentials = &Error{KindUnauthorized, "invalid credentials"}
)
