// Package membershipservice owns members and their roles. The endorsement
// and audit modules resolve actors through it; every permission gate in the
// pipeline is derived from the role set it reports.
package membershipservice
