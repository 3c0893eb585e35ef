package errorx

type Code int

const (
	// Common codes
	BadRequest      Code = 100001
	BadResponse     Code = 100002
	NotFound        Code = 100003
	AlreadyExists   Code = 100004
	Internal        Code = 100005
	TooManyRequests Code = 100006

	// Command codes
	GuildRequired Code = 200001
	BadSyntax     Code = 200002

	// Subscription codes
	RoleNotFound       Code = 300001
	RoleAlreadyExists  Code = 300002
	RoleCreationFailed Code = 300003
	RoleNotCompatible  Code = 300004
	RoleAlreadyHeld    Code = 300005
	RoleNotHeld        Code = 300006
)
