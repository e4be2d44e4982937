package adapters

import (
	"sync"

	sha256 "github.com/minio/sha256-simd"
	"github.com/pkg/errors"

	"github.com/Feng94/lighthouse/internal/application/domain"
	"github.com/Feng94/lighthouse/internal/application/ports"
)

// LocalSigner holds signing secrets for a set of validator keys and produces
// deterministic keyed-hash signatures over 32-byte roots. It stands in for a
// real BLS signer; do not use it outside test networks.
type LocalSigner struct {
	mu       sync.Mutex
	secrets  map[domain.Pubkey][]byte
	disabled map[domain.Pubkey]bool
}

func NewLocalSigner() *LocalSigner {
	return &LocalSigner{
		secrets:  make(map[domain.Pubkey][]byte),
		disabled: make(map[domain.Pubkey]bool),
	}
}

// AddKey registers the signing secret for a pubkey.
func (s *LocalSigner) AddKey(pubkey domain.Pubkey, secret []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[pubkey] = append([]byte(nil), secret...)
}

// SetDisabled toggles signing for a pubkey; a disabled key declines every
// request.
func (s *LocalSigner) SetDisabled(pubkey domain.Pubkey, disabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled[pubkey] = disabled
}

// ForPubkey returns a ports.Signer bound to one key.
func (s *LocalSigner) ForPubkey(pubkey domain.Pubkey) ports.Signer {
	return &keySigner{signer: s, pubkey: pubkey}
}

type keySigner struct {
	signer *LocalSigner
	pubkey domain.Pubkey
}

func (k *keySigner) Sign(root domain.Root) (domain.Signature, error) {
	k.signer.mu.Lock()
	secret, ok := k.signer.secrets[k.pubkey]
	disabled := k.signer.disabled[k.pubkey]
	k.signer.mu.Unlock()

	if !ok {
		return domain.Signature{}, errors.New("no signing key for pubkey")
	}
	if disabled {
		return domain.Signature{}, errors.New("signing is disabled for pubkey")
	}

	// Chain three keyed digests to fill the signature width.
	var sig domain.Signature
	digest := sha256.Sum256(append(append([]byte(nil), secret...), root[:]...))
	copy(sig[0:32], digest[:])
	digest = sha256.Sum256(digest[:])
	copy(sig[32:64], digest[:])
	digest = sha256.Sum256(digest[:])
	copy(sig[64:96], digest[:])
	return sig, nil
}
