// Package bresp models HTTP responses as values that are rendered exactly once.
//
// # Overview
//
// A response is built by a handler, possibly inspected or replaced by middleware, and finally
// rendered by a dispatcher. Rendering hands the status line and the header list to a [BeginFunc]
// and returns the body as an [io.Reader] for the dispatcher to drain. Every variant refuses a
// second render with [ErrUseAfterConsumed].
//
// A minimal example:
//
//	mux := bresp.NewServeMux()
//	mux.HandleFunc("GET /items/{id}", func(ctx context.Context, r *http.Request) (bresp.Response, error) {
//	    item, err := db.GetItem(r.PathValue("id"))
//	    if err != nil {
//	        return nil, bresp.AbortErr(bresp.CodeNotFound, err)
//	    }
//	    return bresp.NewJSON(item)
//	}, "get-item")
//
// # Variants
//
// The set of [Response] implementations is closed:
//
//   - [Buffered] holds the whole body in memory: [NewBuffered], [NewText], [NewJSON]
//   - [FileStream] borrows a file-like resource: [NewFileStream], [NewFile]
//   - [Generator] drains a sequence of chunks: [NewGenerator], [NewTextGenerator], [NewJSONGenerator]
//   - [NoContent], [NotModified] and [Declined] carry no body
//   - [NewRedirect] and [NewPermanentRedirect] build redirects as buffered responses
//
// [MakeResponse] picks the variant from the type of its argument.
//
// Content-Type and Content-Length are added at render time unless the header set already
// carries them. Not Modified responses are the exception: their headers are sent as they are
// and checked against RFC 9110 instead. Problems are reported to the [Logger] and never stop the
// response from being sent.
//
// # Short-circuiting
//
// Handlers return a [*Signal] as their error to stop early:
//
//	return nil, bresp.Abort(bresp.CodeForbidden)
//	return nil, bresp.AbortWithAttrs(bresp.CodeUnauthorized, map[string]any{"realm": "api"})
//	return nil, bresp.Redirect("/login")
//
// A signal that carries a response is sent as it is. A signal that carries only a status code is
// turned into a response by the [ErrorPageFunc] of the dispatcher. Any other error is logged and
// answered with 500 Internal Server Error.
//
// # Middleware
//
// [Middleware] operates on [BareHandler] and sees the response or error of the inner handler:
//
//	func timing(next bresp.BareHandler) bresp.BareHandler {
//	    return bresp.BareHandlerFunc(func(r *http.Request) (bresp.Response, error) {
//	        start := time.Now()
//	        res, err := next.ServeBareBHTTP(r)
//	        log.Printf("%s %s took %v", r.Method, r.URL.Path, time.Since(start))
//	        return res, err
//	    })
//	}
//
// # Named Routes
//
// Routes can be named and reversed into paths, see [Reverser] and [ServeMux.RedirectTo]:
//
//	mux.HandleFunc("GET /users/{id}", getUser, "get-user")
//	url, err := mux.Reverse("get-user", "123") // "/users/123"
//
// # Build tags
//
// Building with the bresp_nojsonstream tag compiles out the streaming JSON encoder.
// [NewJSONGenerator] then fails with [ErrUnsupportedFeature].
package bresp
