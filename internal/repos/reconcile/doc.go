// Package reconcile walks a repository tree in step with a declared
// configuration tree. Visitors decide what happens at each matched node:
// SyncVisitor reconciles remotes and SnapshotVisitor records them.
package reconcile
