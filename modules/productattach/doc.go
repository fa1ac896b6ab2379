// Package productattach serves the product attachment helper as a JSON API
// for the admin panel.
//
//	POST   /upload            multipart field "file", stores with rename on collision
//	GET    /files/{name}      whether the file exists and its persisted path
//	PUT    /files/{name}      {"content": "<base64>"}, writes the file
//	DELETE /files?path=<rel>  removes a whitelisted file, skips otherwise
//	GET    /settings          media dir and URL, page size, store, grid URL
//
// The store is chosen with the X-Store header or the ___store query
// parameter. Responses use the envelope {"data": ...} or {"error": ...}.
package productattach
