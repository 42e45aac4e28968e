// Package sitecrawl provides a single-host web crawler that builds a local
// corpus of raw HTML pages and the list of URLs they were fetched from.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, sqlite/, goquery/).
package sitecrawl
