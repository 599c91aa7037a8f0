package cryptox_test

import (
	"strings"
	"testing"

	"github.com/AkshatMishra0/Derivity-ai/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast; production uses DefaultArgon2Params.
var testParams = cryptox.Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

func newHasher(pepper string) *cryptox.PasswordHasher {
	return cryptox.NewPasswordHasher(pepper, testParams)
}

func TestHash(t *testing.T) {
	h := newHasher("pepper")

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "Abcdefg1"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 128)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(tt.password)
			require.NoError(t, err)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6, "PHC hash should have 6 parts")
			require.Equal(t, "argon2id", parts[1])
			require.Equal(t, "v=19", parts[2])
			require.Equal(t, "m=1024,t=1,p=1", parts[3])
			require.NotEmpty(t, parts[4], "salt should not be empty")
			require.NotEmpty(t, parts[5], "hash should not be empty")

			require.NoError(t, h.Verify(tt.password, hash))
		})
	}
}

func TestHash_UniqueSalts(t *testing.T) {
	h := newHasher("pepper")

	hash1, err := h.Hash("samepassword")
	require.NoError(t, err)
	hash2, err := h.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NoError(t, h.Verify("samepassword", hash1))
	require.NoError(t, h.Verify("samepassword", hash2))
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newHasher("pepper")
	hash, err := h.Hash("Correct-password1")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"correct-password1",
		"Correct-password1 ",
		"",
		strings.Repeat("x", 10000),
	} {
		require.ErrorIs(t, h.Verify(wrong, hash), cryptox.ErrPasswordMismatch, "input %q", wrong)
	}
}

func TestVerify_PepperIsApplied(t *testing.T) {
	hash, err := newHasher("pepper-one").Hash("Abcdefg1")
	require.NoError(t, err)

	require.NoError(t, newHasher("pepper-one").Verify("Abcdefg1", hash))
	require.ErrorIs(t, newHasher("pepper-two").Verify("Abcdefg1", hash), cryptox.ErrPasswordMismatch)
}

func TestVerify_UsesEmbeddedParameters(t *testing.T) {
	hash, err := newHasher("p").Hash("Abcdefg1")
	require.NoError(t, err)

	// A hasher configured with different parameters still verifies old hashes
	other := cryptox.NewPasswordHasher("p", cryptox.Argon2Params{
		Memory: 2048, Iterations: 2, Parallelism: 1, KeyLength: 16, SaltLength: 8,
	})
	require.NoError(t, other.Verify("Abcdefg1", hash))
}

func TestVerify_InvalidHashFormat(t *testing.T) {
	h := newHasher("pepper")

	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing version", "$argon2id$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, h.Verify("test-password", tt.invalidHash), cryptox.ErrInvalidHash)
		})
	}
}

func TestNewPasswordHasher_DefaultParams(t *testing.T) {
	hash, err := cryptox.NewPasswordHasher("pepper", cryptox.Argon2Params{}).Hash("Abcdefg1")
	require.NoError(t, err)
	require.Contains(t, hash, "$m=19456,t=2,p=1$")
}
