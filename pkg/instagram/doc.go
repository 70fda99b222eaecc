// Package instagram holds the knowledge igcleaner has about Instagram's web
// markup: where the inbox lives, how to build lookup selectors from scraped
// labels, and how to tell an outgoing message bubble from an incoming one.
//
// Everything here is coupled to undocumented third-party markup and is
// expected to need updating when that markup changes. Selector strings
// themselves live in config.SelectorsConfig so they can be overridden without
// a rebuild.
//
// Example usage:
//
//	classifier := instagram.NewStyleMarkerClassifier(cfg.Instagram.Selectors.OutgoingStyleMarker)
//	outgoing, err := classifier.IsOutgoing(likeButton)
//
//	sel := instagram.TextIsSelector("Alice")  // :text-is("Alice")
//	if !instagram.IsInbox(page.URL(), cfg.Instagram.InboxPathMarker) {
//	    page.Goto(cfg.Instagram.InboxURL)
//	}
package instagram
