package ledger

import "context"

// Writer records a hypothesis receipt on an external attestation ledger.
// The pipeline core only supplies the content hash; network concerns stay
// behind this boundary.
type Writer interface {
	WriteReceipt(ctx context.Context, hypothesisID, contentHash, authorWallet string) (string, error)
}
