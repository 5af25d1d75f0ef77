// Package store holds the in-memory state of mock orchestrator instances.
//
// An InstanceStore owns one instance's entity graph behind a single
// RWMutex; entities go in and out by value so callers never alias store
// state. Hierarchical collections use flat maps keyed by composite key
// structs rather than nested maps, which keeps uniqueness checks and
// deletes single-level.
//
// The store never returns domain errors: absence is a zero value plus a
// false bool. Classifying absence as NotFound or Conflict is the API
// layer's job.
//
// A Registry maps opaque instance ids to stores, creating each lazily on
// first reference. Separate ids never share state.
package store
