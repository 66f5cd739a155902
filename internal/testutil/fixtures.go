package testutil

// TextbookNetwork is the four-module example: one press yields 8 lo and 4 hi
// pulses, of which 4 lo are the seeded button and broadcaster pulses.
const TextbookNetwork = `broadcaster -> a, b, c
%a -> b
%b -> c
%c -> inv
&inv -> a
`

// SecondNetwork mixes flip-flops and conjunctions and ends in the undefined
// sink "output". 1000 presses yield 4250 lo and 2750 hi pulses.
const SecondNetwork = `broadcaster -> a
%a -> inv, con
&inv -> b
%b -> con
&con -> output
`

// FlipFlopChain is a conjunction-free chain ending in the sink "out".
const FlipFlopChain = `broadcaster -> a
%a -> b
%b -> out
`

// TwoFeederNetwork holds two counter subgraphs of period 3 and 5. Each
// counter's hub conjunction fires lo when its count matches, the inverters
// ia and ib turn that into hi for the funnel, and the funnel sends lo to rx
// only when both inverters are hi in the same press: press 15.
const TwoFeederNetwork = `broadcaster -> a0, b0
%a0 -> a1, ha
%a1 -> ha
&ha -> a0, ia
&ia -> funnel
%b0 -> b1, hb
%b1 -> b2
%b2 -> hb
&hb -> b0, b1, ib
&ib -> funnel
&funnel -> rx
`

// UnevenFeederNetwork feeds its funnel from the flip-flop f1, which first
// sends hi at press 2 and then every fourth press, next to the period-3
// inverter ia.
const UnevenFeederNetwork = `broadcaster -> f0, a0
%f0 -> f1
%f1 -> funnel
%a0 -> a1, ha
%a1 -> ha
&ha -> a0, ia
&ia -> funnel
&funnel -> rx
`
