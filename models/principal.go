package models

// Principal is the identity the server believes is making the current
// request. It is derived from a validated access token and lives only
// for the duration of that request.
type Principal struct {
	LoginID  string
	Nickname string
	Role     Role
}
