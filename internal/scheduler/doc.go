// Package scheduler propagates one button press through a network.
//
// # How It Works
//
// A press seeds a FIFO queue with a single Lo signal from the synthetic
// "button" to the broadcaster, then repeats until the queue is empty:
//
//  1. Dequeue the head signal and count it.
//  2. Notify the observer, if any.
//  3. Deliver it to its destination.
//  4. If the destination emitted, enqueue one signal per output wire, in
//     output order.
//
// Signals are never deduplicated, reordered or delivered in parallel. A
// conjunction's output depends on which of its inputs it has already heard
// from during the current wave, so every signal produced at propagation
// depth k is delivered before any signal at depth k+1.
//
// # Termination
//
// A wave ends when the queue drains. Every emission is caused by a signal
// already delivered in the same wave, which holds for the networks this
// simulator targets. A malformed network that re-fires forever within one
// wave is not detected.
package scheduler
