package jwtx_test

import (
	"testing"
	"time"

	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
	"github.com/AkshatMishra0/Derivity-ai/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://derivity.example"

func TestKeyManagerSignAndVerify(t *testing.T) {
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer})
	require.NoError(t, err)
	require.True(t, km.IsReady())
	require.Equal(t, "EdDSA", km.Signer.Alg())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims("user-1", "sess-1", exampleIssuer, now, now.Add(time.Hour))

	token, err := km.Signer.Sign(claims)
	require.NoError(t, err)

	got, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "sess-1", got.SID)
	require.Equal(t, claims.ID, got.ID)
}

func TestKeyManagerStableKIDFromPEM(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	a, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, PrivateKeyPEM: pemKey})
	require.NoError(t, err)
	b, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, PrivateKeyPEM: pemKey})
	require.NoError(t, err)
	require.Equal(t, a.Signer.KID(), b.Signer.KID())

	// A token from the first manager verifies after a "restart"
	now := time.Now()
	token, err := a.Signer.Sign(jwtx.NewSessionClaims("u", "s", exampleIssuer, now, now.Add(time.Hour)))
	require.NoError(t, err)
	_, err = b.Verifier.Verify(token)
	require.NoError(t, err)
}

func TestKeyManagerRequiresIssuer(t *testing.T) {
	_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{})
	require.Error(t, err)
}

func TestVerifyRejections(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, Now: clock})
	require.NoError(t, err)
	other, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: exampleIssuer, Now: clock})
	require.NoError(t, err)

	sign := func(s jwtx.Signer, c jwtx.Claims) string {
		token, err := s.Sign(c)
		require.NoError(t, err)
		return token
	}

	t.Run("expired", func(t *testing.T) {
		token := sign(km.Signer, jwtx.NewSessionClaims("u", "s", exampleIssuer, now.Add(-2*time.Hour), now.Add(-time.Hour)))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token := sign(km.Signer, jwtx.NewSessionClaims("u", "s", "other", now, now.Add(time.Hour)))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("unknown key", func(t *testing.T) {
		token := sign(other.Signer, jwtx.NewSessionClaims("u", "s", exampleIssuer, now, now.Add(time.Hour)))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("missing session id", func(t *testing.T) {
		token := sign(km.Signer, jwtx.NewSessionClaims("u", "", exampleIssuer, now, now.Add(time.Hour)))
		_, err := km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidClaim)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := km.Verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		claims := jwtx.NewSessionClaims("u", "s", exampleIssuer, now, now.Add(time.Hour))
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tok.Header["kid"] = km.Signer.KID()
		token, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = km.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestKeySetAddValidation(t *testing.T) {
	ks := jwtx.NewKeySet()
	require.False(t, ks.IsReady())
	require.Error(t, ks.Add("", make([]byte, 32)))
	require.Error(t, ks.Add("kid", []byte("short")))

	_, err := ks.Get("missing")
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}
