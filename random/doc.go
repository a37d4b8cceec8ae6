// Package random provides the reproducible, seedable integer source used by
// every stochastic step in moriarty.
//
// Goals (mirroring the project-wide determinism rules):
//   - Determinism: the output stream is a pure function of the Seed and the
//     sequence of calls. Two sources built from equal seeds produce identical
//     streams; different seeds diverge within the first few draws.
//   - Encapsulation: a single Source factory; no time-based seeding anywhere.
//   - Safety: invalid argument ranges return sentinel errors, never panic.
//
// Concurrency: a Source is NOT safe for concurrent use. The generation
// driver guarantees only the currently-generating variable touches it.
//
// This is test-data randomness, not cryptographic randomness.
package random
