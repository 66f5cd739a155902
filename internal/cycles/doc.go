// Package cycles answers "after how many presses does the sink first receive
// Lo" for networks whose sink is driven by a single conjunction (the funnel)
// fed by independent periodic subgraphs (the feeders).
//
// A conjunction emits Lo only when every input last sent Hi, so the funnel
// fires Lo in the first press where every feeder sends it Hi. Analyze runs one
// shared simulation, records the presses at which each feeder sends Hi to the
// funnel, takes the first such press as the feeder's period, and combines the
// periods with a least common multiple. By default each period is verified by
// requiring the second Hi at exactly twice the first press index.
package cycles
