// Package ports defines the contracts between the dispatch core and its
// infrastructure: persistence of orders, batches and drivers, the unit of
// work that makes a generation run atomic, the upstream geocoder with its
// persistent cache, and the publisher of integration events.
package ports
