package password_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authkit/pkg/password"
)

// fastParams keep tests quick; production code uses DefaultParams.
var fastParams = password.Params{
	Memory:      64,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestGenerateAndCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password []byte
	}{
		{"empty", []byte{}},
		{"ascii", []byte("correct horse battery staple")},
		{"unicode", []byte("пароль 密码 🔐")},
		{"binary", []byte{0x00, 0xff, 0x10, 0x00, 0x7f}},
		{"long", []byte(strings.Repeat("a", 4096))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := password.Generate(tt.password, fastParams)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(encoded, "$argon2id$v=19$m=64,t=1,p=1$"), encoded)

			require.NoError(t, password.Compare(encoded, tt.password))

			wrong := append([]byte{}, tt.password...)
			wrong = append(wrong, 'x')
			assert.ErrorIs(t, password.Compare(encoded, wrong), password.ErrMismatch)
		})
	}
}

func TestGenerate_DistinctSalts(t *testing.T) {
	t.Parallel()

	pw := []byte("same password")
	first, err := password.Generate(pw, fastParams)
	require.NoError(t, err)
	second, err := password.Generate(pw, fastParams)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, password.Compare(first, pw))
	assert.NoError(t, password.Compare(second, pw))
}

func TestGenerate_InvalidParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params password.Params
	}{
		{"zero iterations", password.Params{Memory: 64, Iterations: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32}},
		{"zero parallelism", password.Params{Memory: 64, Iterations: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32}},
		{"memory below 8*p", password.Params{Memory: 8, Iterations: 1, Parallelism: 2, SaltLength: 16, KeyLength: 32}},
		{"short salt", password.Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 4, KeyLength: 32}},
		{"short key", password.Params{Memory: 64, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := password.Generate([]byte("pw"), tt.params)
			assert.ErrorIs(t, err, password.ErrInvalidParams)
		})
	}
}

func TestCompare_MalformedHash(t *testing.T) {
	t.Parallel()

	valid, err := password.Generate([]byte("pw"), fastParams)
	require.NoError(t, err)
	parts := strings.Split(valid, "$")

	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"empty", "", password.ErrMalformedHash},
		{"garbage", "not-a-hash", password.ErrMalformedHash},
		{"wrong algorithm", "$argon2i$v=19$m=64,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"missing segment", "$argon2id$v=19$m=64,t=1,p=1$" + parts[4], password.ErrMalformedHash},
		{"bad version field", "$argon2id$x=19$m=64,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"unsupported version", "$argon2id$v=16$m=64,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrIncompatibleVersion},
		{"bad params", "$argon2id$v=19$m=abc,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"bad salt", "$argon2id$v=19$m=64,t=1,p=1$!!!$" + parts[5], password.ErrMalformedHash},
		{"bad digest", "$argon2id$v=19$m=64,t=1,p=1$" + parts[4] + "$!!!", password.ErrMalformedHash},
		{"trailing version text", "$argon2id$v=19junk$m=64,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"trailing params text", "$argon2id$v=19$m=64,t=1,p=1xyz$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"signed param", "$argon2id$v=19$m=+64,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"padded param", "$argon2id$v=19$m=064,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
		{"excessive memory", "$argon2id$v=19$m=4194304,t=1,p=1$" + parts[4] + "$" + parts[5], password.ErrMalformedHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := password.Compare(tt.encoded, []byte("pw"))
			assert.ErrorIs(t, err, tt.want)
			assert.NotErrorIs(t, err, password.ErrMismatch)
		})
	}
}

func TestCompare_HistoricalParams(t *testing.T) {
	t.Parallel()

	old := password.Params{Memory: 32, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32}
	encoded, err := password.Generate([]byte("pw"), old)
	require.NoError(t, err)

	got, err := password.ParamsOf(encoded)
	require.NoError(t, err)
	assert.Equal(t, old, got)

	// A hasher with different defaults still verifies the old hash.
	h := password.NewHasher(password.WithParams(fastParams), password.WithWorkers(1))
	defer h.Close()

	require.NoError(t, h.Verify(context.Background(), encoded, []byte("pw")))
	assert.True(t, h.NeedsRehash(encoded))
}

func TestCompare_LegacyBcrypt(t *testing.T) {
	t.Parallel()

	legacy, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, password.Compare(string(legacy), []byte("pw")))
	assert.ErrorIs(t, password.Compare(string(legacy), []byte("other")), password.ErrMismatch)
	assert.ErrorIs(t, password.Compare("$2a$10$short", []byte("pw")), password.ErrMalformedHash)

	h := password.NewHasher(password.WithParams(fastParams), password.WithWorkers(1))
	defer h.Close()
	assert.True(t, h.NeedsRehash(string(legacy)))
}
