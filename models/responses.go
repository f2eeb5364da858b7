package models

// AppInfoResponse is returned by GET / and describes the running server.
type AppInfoResponse struct {
	// Name is the service name, identical to the token issuer.
	Name string `json:"name"`

	// Version is the configured application version.
	Version string `json:"version"`

	// BuildCommit is the commit the binary was built from, or "N/A".
	BuildCommit string `json:"buildCommit"`

	// BuildDate is the build timestamp, or "N/A".
	BuildDate string `json:"buildDate"`
}
