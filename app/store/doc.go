// Package store keeps prover tasks in an embedded ordered key-value engine, so the work queue
// survives restarts. Keys are task ids, values are JSON records. The greatest key is treated as the
// most recent task, which makes sortable ids (see SequenceID) a contract for producers.
package store
