package constants

// Path segments of the ingress API
const (
	PathSend       = "send"
	PathAttach     = "attach"
	PathOutput     = "output"
	PathRestate    = "restate"
	PathInvocation = "invocation"

	QueryDelay = "delay"
)
