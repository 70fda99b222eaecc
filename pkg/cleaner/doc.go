// Package cleaner unsends the logged-in account's messages across every
// Instagram Direct conversation by driving a browser page.
//
// The flow is linear and single-threaded:
//
//  1. Open Instagram and wait for a human to log in (Run, WaitForLogin).
//  2. Snapshot the inbox labels, skipping the Notes row (SnapshotConversations).
//  3. For each label, re-find the row by its exact text, open it and clean it
//     (ProcessInbox, CleanConversation).
//  4. Cleaning a conversation alternates a delete pass over the rendered
//     messages (DeleteVisibleOutgoing) with a scroll to older history, until
//     the counterpart avatar at the very top is visible.
//
// Failures are contained at two levels. A failed unsend is logged, Escape is
// pressed to close any open menu, and the pass continues with the next
// message. A failed conversation is logged, the page is sent back to the
// inbox, and the run continues with the next label. Anything else ends the
// run.
//
// Usage:
//
//	c := cleaner.New(session.Page(), cfg, log, cleaner.WithProgress(tracker))
//	summary, err := c.Run(ctx, prompter)
package cleaner
