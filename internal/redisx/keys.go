package redisx

const (
	// Bearer token untuk API backend: auth:token -> "<jwt>"
	KeyAuthToken = "auth:token"
)
