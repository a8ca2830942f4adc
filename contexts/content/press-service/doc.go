// Package pressservice manages content posts. The endorsement pipeline hands
// it rendered press-release drafts; slug collisions are resolved with numeric
// suffixes backed by a storage uniqueness constraint.
package pressservice
