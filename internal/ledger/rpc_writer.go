package ledger

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// RPCWriter posts hypothesis receipts to an attestation node over HTTP.
// Without a configured endpoint it degrades to a deterministic payload-hash
// transaction id so offline runs stay reproducible.
type RPCWriter struct {
	URL     string
	Network string
	Client  *http.Client
}

func NewRPCWriter(url, network string) *RPCWriter {
	return &RPCWriter{
		URL:     url,
		Network: network,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type receiptPayload struct {
	HypothesisID string `json:"hypothesis_id"`
	ContentHash  string `json:"content_hash"`
	AuthorWallet string `json:"author_wallet"`
	Network      string `json:"network,omitempty"`
	Timestamp    string `json:"timestamp"`
}

type receiptResponse struct {
	TxID string `json:"tx_id"`
}

func (w *RPCWriter) WriteReceipt(ctx context.Context, hypothesisID, contentHash, authorWallet string) (string, error) {
	payload := receiptPayload{
		HypothesisID: hypothesisID,
		ContentHash:  contentHash,
		AuthorWallet: authorWallet,
		Network:      w.Network,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	if w.URL == "" {
		log.Printf("[ledger] no endpoint configured, returning local receipt id for %s", hypothesisID)
		return localTxID(payload), nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create receipt request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("receipt write failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("receipt write failed (status %d): %s", resp.StatusCode, data)
	}

	var out receiptResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode receipt response: %w", err)
	}
	if out.TxID == "" {
		return "", fmt.Errorf("receipt response missing tx_id")
	}
	return out.TxID, nil
}

// localTxID hashes the receipt payload minus the timestamp so the offline
// id is stable for a given hypothesis and hash.
func localTxID(p receiptPayload) string {
	p.Timestamp = ""
	data, _ := json.Marshal(p)
	sum := sha256.Sum256(data)
	return "0x" + hex.EncodeToString(sum[:])
}
