// Package ingestion turns uploaded documents into indexed chunks.
//
// The Pipeline type covers the read side of an upload: fetching bytes for a
// document reference, extracting markdown text through the extraction
// service, and splitting the text into header-bounded chunks. The Indexer
// type covers the write side: embedding each chunk and upserting it into the
// vector index.
//
// Embedding and upserting are performed concurrently using a worker pool,
// but an upload request blocks until the whole batch has settled. Partial
// writes are possible when a later chunk fails and are not rolled back.
package ingestion
