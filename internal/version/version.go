package version

import "fmt"

var (
	Name        = "restate-client"
	ShortName   = "restate-client"
	Description = "HTTP client for the Restate ingress"
	Version     = "v0.1.0"
	Commit      = "none"
	Date        = "nowish"
)

// UserAgent is sent on every ingress request
func UserAgent() string {
	return fmt.Sprintf("%s/%s", ShortName, Version)
}
