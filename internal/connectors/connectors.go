package connectors

import "orderreg/internal"

// MailConnector fetches raw order messages from a mailbox. Header parsing is
// left to intake so connectors only move bytes.
type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.InboundMessage, error)
}
