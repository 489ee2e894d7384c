// Package fluent resolves localization messages into text.
//
// A message is a pattern of literal text and placeables. Placeables
// interpolate caller arguments, reference other messages and terms, call
// functions and select variants by plural category. The package does not
// parse message source; it works on syntax trees built elsewhere or decoded
// from YAML/JSON documents with [ast.Decode].
//
// # Quick Start
//
// Create a bundle for a locale, add resources and format messages:
//
//	res, err := ast.Decode([]byte(`
//	- id: emails
//	  value:
//	    - select: {var: count}
//	      variants:
//	        - key: one
//	          value: You have one email.
//	        - key: other
//	          default: true
//	          value: [You have , {var: count}, " emails."]
//	`))
//	if err != nil {
//	    return err
//	}
//
//	b, err := fluent.New(language.English, fluent.WithResources(res))
//	if err != nil {
//	    return err
//	}
//
//	text, errs := b.Format("emails", "", fluent.Args{"count": fluent.Int(3)})
//	// text: "You have 3 emails." (with isolation marks around 3)
//
// # Errors
//
// Formatting never fails. Unresolvable parts are replaced by markers such
// as {$name} or {id} and reported as *ResolverError values. Use errors.Is
// with the sentinels or Kinds to inspect them:
//
//	text, errs := b.Format("welcome", "", nil)
//	for _, err := range errs {
//	    if errors.Is(err, fluent.ErrMissingArgument) {
//	        // ...
//	    }
//	}
//
// Only a missing message, a missing attribute or a message without value
// yields empty text.
//
// # Values and Functions
//
// Arguments are Values: StringValue, NumberValue, DateTimeValue or any type
// implementing Value. Numbers and dates render through formatters built by
// the locale services and cached in an [intl.Memoizer]. The builtin NUMBER
// and DATETIME functions adjust display options; more functions are added
// with WithFunction.
//
// # Configuration
//
// Settings come from options or from the environment:
//
//	FLUENT_LOCALE          locale tag (default en-US)
//	FLUENT_USE_ISOLATING   bidirectional isolation marks (default true)
//	FLUENT_MAX_DEPTH       nesting limit (default 64)
//	FLUENT_MAX_PLACEABLES  expansion limit (default 100)
//	LOG_LEVEL, LOG_FORMAT  bundle logger (default info, json)
//
//	cfg, err := fluent.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	b, err := fluent.NewFromConfig(cfg, fluent.WithResources(res...))
//
// # Resource Loading
//
// Package resmgr loads resource documents per locale from a filesystem or
// an S3 bucket and caches them, optionally sharing raw documents through
// Redis. Load builds a bundle from such a loader:
//
//	mgr := resmgr.NewManager(resmgr.NewFSSource(locales),
//	    resmgr.WithPathTemplate("{locale}/{res_id}.yaml"),
//	)
//	b, err := fluent.Load(ctx, mgr, language.German, []string{"main"})
package fluent
