// Package queries contains read-only operations for the dispatch API.
//
// Query handlers read straight from the database with raw SQL and return
// flat response structs shaped for presentation; they never load aggregates
// and never open a unit of work. Every query is created through its
// constructor and validated by its handler before execution.
package queries
