package ports

import "github.com/Feng94/lighthouse/internal/application/domain"

// Signer signs a 32-byte signing root for one validator key. Every failure
// (missing key, internal refusal, duplicate protection) is a uniform decline;
// the producer does not distinguish sub-reasons.
type Signer interface {
	Sign(root domain.Root) (domain.Signature, error)
}
