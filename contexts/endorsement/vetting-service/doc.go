// Package vettingservice implements the candidate vetting and endorsement
// pipeline inside the endorsement context.
//
// The module owns the vetting case lifecycle: report section research, stage
// transitions, the committee recommendation, board votes, and the
// finalize-once commit of the endorsement decision with its press-release and
// candidate-response side effects. Business rules live in domain/application
// layers; infrastructure stays behind ports and adapters.
package vettingservice
