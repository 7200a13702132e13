// Package redis opens the go-redis client backing the login host's user store.
//
//	client, err := redis.Open(ctx, redis.Config{URL: os.Getenv("REDIS_URL")})
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Open validates the URL scheme, pings the server and retries failed pings
// RetryAttempts times, waiting RetryInterval longer before each attempt.
// Config is loadable with caarlos0/env (REDIS_URL, REDIS_POOL_SIZE,
// REDIS_DIAL_TIMEOUT, REDIS_RETRY_ATTEMPTS, REDIS_RETRY_INTERVAL).
//
// Healthcheck adapts a client to the readiness checks served at /ready.
package redis
