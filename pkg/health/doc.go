// Package health serves the liveness and readiness probes of the login host.
//
//	h := health.New(health.Checks{"redis": redis.Healthcheck(client)})
//	r.Get("/live", h.Live)
//	r.Get("/ready", h.Ready)
//
// Check errors are logged but never echoed to the caller; the body only
// names each check with its status.
package health
