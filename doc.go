// Package tplcache is a filesystem cache for compiled template artifacts.
//
// Compiled templates are stored one file per cache key below a cache root.
// Keys are derived from the template name, with its installation-specific
// path prefix stripped, and a SHA-256 digest of the artifact identity:
//
//	custom/page_<sha256 of identity>.tplc
//
// Open wires the pieces from a config.Config:
//
//	cfg, err := config.Load(ctx, fsbilly.NewLocal(), "/etc/tplcache.yaml")
//	c, err := tplcache.Open(cfg, tplcache.WithLogger(logger))
//
//	k := c.Key("themes/custom/page.tpl", "PageTemplateV2")
//	if c.IsFresh(ctx, k, sourceModTime) {
//	    if h, ok := c.Load(ctx, k); ok {
//	        content, err := h.Bytes()
//	        ...
//	    }
//	}
//	_ = c.Write(ctx, k, compiled)
//
// The key, medium and store packages can be used on their own; env adds
// template loading on top and watch invalidates the cache when sources
// change.
package tplcache
