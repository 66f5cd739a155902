// Package circuit defines the value types exchanged by a pulse network and
// the three module variants that consume them.
//
// # Modules
//
// A Module is a closed sum type over *Broadcaster, *FlipFlop and *Conjunction.
// Each variant carries its own state and its own receive contract:
//
//   - Broadcaster relays whatever it receives to every output.
//   - FlipFlop ignores Hi. On Lo it toggles and emits Hi when it turns on and
//     Lo when it turns off.
//   - Conjunction remembers the last pulse from every declared input and emits
//     Lo only when all of them are Hi.
//
// Wiring (which module feeds which) lives in the network package. The types in
// this package only know their own ordered output list.
package circuit
