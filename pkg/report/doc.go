// Package report summarizes what a render produced.
//
// Summarize is the line-scan heuristic the operator sees after
// `labnet places`; FromTopology counts the same places structurally from
// device_instances. The two can disagree when a template filters or
// renames places, and neither is used to decide success.
package report
