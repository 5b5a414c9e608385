// Package health serves liveness and readiness probes.
//
// conduit.WithHealthChecks mounts both handlers; they also work on any
// router:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the
// client sends Accept: application/json or ?format=json:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "redis": {"status": "unhealthy", "error": "…", "duration": "1.2ms"}
//	  }
//	}
//
// Checks run concurrently; one still running at the timeout is reported
// with [ErrCheckTimeout].
package health
