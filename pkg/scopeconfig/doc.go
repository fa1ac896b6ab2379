// Package scopeconfig resolves configuration values that can be overridden
// per website and per store.
//
// A Source answers for exactly one scope. Resolver adds the fallback
// stores -> websites -> default on top of it:
//
//	src := scopeconfig.Chain(
//		scopeconfig.NewMemoryCache(
//			scopeconfig.NewRedisCache(scopeconfig.NewPostgresSource(pool), rdb, 10*time.Minute),
//			0, time.Minute,
//		),
//		scopeconfig.NewStatic(map[string]string{"productattach/view/items_per_page": "20"}),
//	)
//	cfg := scopeconfig.NewResolver(src, stores)
//	v, err := cfg.Value(ctx, "productattach/view/items_per_page", scopeconfig.ScopeStores, 1)
//
// Values missing in every scope return ErrNotFound.
package scopeconfig
