// Package posts turns the files of a source directory into an ordered,
// immutable index of posts.
//
// A build lists the directory once and loads every file on a bounded pool
// of workers: raw content, the first level-1 heading as title and the
// modification date from the source's fallback chain. Files that fail to
// load are left out and recorded in the BuildReport; a directory that
// cannot be listed fails the whole build.
//
// The resulting Index orders posts newest first with undated posts last
// and answers slug lookups and positional previous/next queries. Service
// owns the current Index, building it on first use and swapping it on
// Refresh.
package posts
