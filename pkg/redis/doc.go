// Package redis connects to Redis with go-redis/v9. The client backs the
// shared scope config cache.
//
//	rdb, err := redis.Connect(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//	defer rdb.Close()
//
//	probe := redis.Healthcheck(rdb)
package redis
