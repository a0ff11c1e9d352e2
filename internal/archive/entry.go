// Package archive keeps a PostgreSQL copy of gazette documents that were
// fetched and classified as valid. Published BOE documents never change, so
// an archived copy can be served in place of a new upstream fetch.
package archive

import "time"

// Entry is an archived document with its raw XML.
type Entry struct {
	ID         string    `json:"id"`
	Raw        string    `json:"raw"`
	SizeBytes  int64     `json:"size_bytes"`
	ArchivedAt time.Time `json:"archived_at"`
}

// Summary describes an archived document without its body.
type Summary struct {
	ID         string    `json:"id"`
	SizeBytes  int64     `json:"size_bytes"`
	ArchivedAt time.Time `json:"archived_at"`
}
