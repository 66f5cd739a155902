// Package network assembles parsed wiring definitions into a Network: the
// module table, the definition order, and the resolved input adjacency that
// every conjunction is seeded from.
//
// Construction runs in two passes. The first registers every definition as a
// module. The second resolves, for every id that appears on either side of a
// wire, the ordered list of modules that output to it, and seeds each
// conjunction's memory with Lo for all of those inputs. Wiring is immutable
// after Build returns; only module state changes, and only through Deliver.
package network
