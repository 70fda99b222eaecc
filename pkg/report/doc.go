// Package report records the outcome of a cleanup run.
//
// A Summary holds one ConversationResult per conversation the run looked at.
// At the end of the run it is written as indented JSON to
// igcleaner_<start time>.json and can be rendered to the terminal as Markdown.
// Reports are an audit trail only; nothing reads them back.
package report
