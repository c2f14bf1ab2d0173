// Package httpapi exposes the document service over HTTP using chi.
//
// Routes:
//
//	POST   /v1/parse                    parse an upload without storing it
//	POST   /v1/documents/{id}           parse an upload and store its blocks
//	GET    /v1/documents                list stored documents
//	GET    /v1/documents/{id}/blocks    stored blocks of a document
//	GET    /v1/documents/{id}/text      plain text of a document
//	DELETE /v1/documents/{id}           remove a document
//	GET    /healthz                     liveness probe
//
// Uploads are either multipart/form-data with a "file" field or a raw
// request body whose Content-Type names the format.
package httpapi
