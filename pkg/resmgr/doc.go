// Package resmgr loads resource documents for localization bundles.
//
// A Source fetches raw documents by path. FSSource reads from any fs.FS
// (embed.FS, os.DirFS) and S3Source reads from an S3-compatible bucket.
// Manager maps a locale and resource id onto a path, decodes documents with
// ast.Decode and keeps the decoded resources in memory:
//
//	mgr := resmgr.NewManager(resmgr.NewFSSource(locales),
//	    resmgr.WithPathTemplate("{locale}/{res_id}.yaml"),
//	)
//
//	res, err := mgr.Resources(ctx, language.Polish, "main", "errors")
//	if err != nil && len(res) == 0 {
//	    return err
//	}
//	bundle, err := fluent.New(language.Polish, fluent.WithResources(res...))
//
// Raw documents may also be shared across processes through a
// cache.Cache[[]byte], for example a Redis cache:
//
//	raw := cache.NewRedis[[]byte](client, cache.BytesMarshaler{}, cache.WithPrefix("l10n"))
//	mgr := resmgr.NewManager(src, resmgr.WithRawCache(raw, 10*time.Minute))
//
// Errors match the package sentinels (ErrNotFound, ErrAccessDenied,
// ErrFetchFailed) regardless of the source.
package resmgr
