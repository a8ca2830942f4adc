// Package digitalauditservice runs background digital presence audits for
// candidates under vetting. A trigger is accepted synchronously, recorded as
// audit_pending, and researched on a detached goroutine that fans out across
// platforms; at most one audit may be pending or running per vetting. An
// orphan sweep fails audits stranded in running after a crash.
package digitalauditservice
