// Package pg connects to PostgreSQL through a pgx/v5 pool and applies the
// embedded goose migrations.
//
//	pool, err := pg.Connect(ctx, cfg.Postgres)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg.Postgres, log); err != nil {
//		return err
//	}
//
// Connect retries with a growing delay so the service can start before the
// database is reachable. Healthcheck wraps Ping for readiness probes.
package pg
