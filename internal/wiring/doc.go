/*
Package wiring parses the line-oriented circuit description into ordered
module definitions.

Each non-blank line declares one module:

	broadcaster -> a, b, c
	%a -> b
	&inv -> a

A `%` marker declares a flip-flop, `&` a conjunction, and the single unmarked
line must be the broadcaster. Blank lines and lines starting with `#` are
skipped. Parsing is purely syntactic; wiring checks belong to the network
package.
*/
package wiring
