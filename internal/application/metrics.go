package application

import "expvar"

// authStats is published at /api/debug/vars under "auth".
var authStats = expvar.NewMap("auth")

const (
	statRegistered     = "registered"
	statLoginOK        = "login_success"
	statLoginFailed    = "login_failure"
	statResetRequested = "reset_requested"
	statResetMailFail  = "reset_mail_failure"
	statResetCompleted = "reset_completed"
	statResetRejected  = "reset_rejected"
)
