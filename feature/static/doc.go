// Package static serves a directory tree over HTTP.
//
// Requests are resolved against the configured root (the working directory by
// default). A regular file is streamed with a content type inferred from its
// extension. A directory serves its index file when one exists and a generated
// listing otherwise. Missing paths fall through to the application's 404.
//
// Only GET and HEAD are served; other methods fall through untouched. Nothing
// is cached between requests.
package static
