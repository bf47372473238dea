// Package oead reads, writes, and converts the binary file formats used by
// first-party Nintendo EAD titles, principally The Legend of Zelda: Breath
// of the Wild: Yaz0 compression, SARC archives, BYML property trees, and
// AAMP parameter trees.
//
// Every codec operates on caller-owned, in-memory buffers: there is no
// streaming or incremental parsing, and no concurrency inside a single call.
// Two goroutines may call into the package concurrently as long as they
// operate on disjoint buffers.
package oead
