// Package loader reads file contents for a lint run. Reads go through a
// Source so runs can be fed from disk or from memory, and may be throttled
// with a token bucket.
package loader
