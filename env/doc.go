// Package env connects a template loader, a compiler and an executor to the
// compiled artifact cache.
//
// An Environment resolves a template name to a class name, the identity of
// its compiled form, derives the cache key from both and serves the template
// from, in order, the in-process memo, a fresh cache entry or a new
// compilation:
//
//	e, err := env.New[*Template](loader, compiler, executor,
//	    env.WithCache(s),
//	    env.WithLogger(logger),
//	)
//	tpl, err := e.Load(ctx, "theme::page")
//
// Cache failures never fail a Load. A cache entry the executor cannot
// materialize is treated as a miss and recompiled, and a failed write back
// is logged.
package env
