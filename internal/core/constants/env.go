package constants

const (
	EnvPrefix = "RESTATE_CLIENT"

	// EnvLazySession suppresses eager session construction, test harnesses set this
	EnvLazySession = "RESTATE_CLIENT_LAZY_SESSION"
	EnvConfigFile  = "RESTATE_CLIENT_CONFIG_FILE"
	EnvForceColors = "RESTATE_CLIENT_FORCE_COLORS"
)
