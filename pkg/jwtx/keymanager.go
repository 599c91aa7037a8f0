package jwtx

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
)

// KeyManager wires a signer, the KeySet holding its public key and a verifier
// bound to the same issuer.
type KeyManager struct {
	Signer   Signer
	Verifier *EdDSAVerifier
	KeySet   *KeySet
}

// KeyManagerOptions configures a KeyManager.
type KeyManagerOptions struct {
	// Issuer is written into and required from every token.
	Issuer string

	// PrivateKeyPEM is a PKCS8 Ed25519 key. When empty an ephemeral key is
	// generated and every session is invalidated on restart.
	PrivateKeyPEM []byte

	// Now overrides the verifier clock; defaults to time.Now.
	Now func() time.Time
}

// NewKeyManager builds a KeyManager from opts.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	pemKey := opts.PrivateKeyPEM
	if len(pemKey) == 0 {
		var err error
		if pemKey, err = cryptox.GenerateEd25519Key(); err != nil {
			return nil, fmt.Errorf("jwtx: generate ephemeral key: %w", err)
		}
	}

	// Load once to derive a stable kid from the public key, then again under it.
	probe, err := NewSignerEdDSA("", pemKey)
	if err != nil {
		return nil, err
	}
	signer, err := NewSignerEdDSA(KeyID(probe.PublicKey()), pemKey)
	if err != nil {
		return nil, err
	}

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: add signer to keyset: %w", err)
	}

	verifier := NewVerifierEdDSA(keyset, opts.Issuer)
	if opts.Now != nil {
		verifier.WithClock(opts.Now)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: verifier,
		KeySet:   keyset,
	}, nil
}

// KeyID derives a kid from the SHA-256 of an Ed25519 public key, so a key
// loaded from disk keeps its kid across restarts.
func KeyID(pub []byte) string {
	sum := sha256.Sum256(pub)
	return "derivity-" + base64.RawURLEncoding.EncodeToString(sum[:12])
}

// IsReady returns true if the KeyManager has a key loaded.
func (km *KeyManager) IsReady() bool {
	return km != nil && km.KeySet.IsReady()
}
