// Package iocache stores fetched NFL datasets on local disk and decides when a
// stored copy may be served instead of downloading it again.
//
// Entries live one file per key under a cache root. An entry's write time is
// its file modification time, and freshness is judged against a max age.
// Fetch history is optionally recorded in a SQL database.
package iocache
