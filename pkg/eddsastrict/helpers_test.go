package eddsastrict

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/require"
)

// fixturesDir returns the path to the fixtures directory (works regardless of test cwd).
func fixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

type testKeyInfo struct {
	PrivateKey        string `json:"private_key"`
	PublicKey         string `json:"public_key"`
	AuthenticationKey string `json:"authentication_key"`
	Message           string `json:"message"`
	Signature         string `json:"signature"`
}

// loadTestKeyInfo reads fixtures/test_key_info.json.
func loadTestKeyInfo(t *testing.T) testKeyInfo {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(fixturesDir(), "test_key_info.json"))
	require.NoError(t, err)
	var info testKeyInfo
	require.NoError(t, json.Unmarshal(raw, &info))
	return info
}

func hexDecode(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	require.NoError(t, err)
	return b
}

func generateKey(t *testing.T) PrivateKey {
	t.Helper()
	seed := make([]byte, PrivateKeyLength)
	_, err := rand.Read(seed)
	require.NoError(t, err)
	k, err := PrivateKeyFromBytes(seed)
	require.NoError(t, err)
	return k
}

// eightTorsion lists the encodings of the 8-torsion subgroup E[8]. It is
// cyclic: entry i is [i]P for a point P of order 8, so entry 8-i is the
// negation of entry i.
var eightTorsion = [8]string{
	"0100000000000000000000000000000000000000000000000000000000000000",
	"c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac037a",
	"0000000000000000000000000000000000000000000000000000000000000080",
	"26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc05",
	"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
	"26e8958fc2b227b045c3f489f2ef98f0d5dfac05d3c63339b13802886d53fc85",
	"0000000000000000000000000000000000000000000000000000000000000000",
	"c7176a703d4dd84fba3c0b760d10670f2a2053fa2c39ccc64ec7fd7792ac03fa",
}

func torsionBytes(t *testing.T, i int) []byte {
	t.Helper()
	return hexDecode(t, eightTorsion[i])
}

func torsionPoint(t *testing.T, i int) *edwards25519.Point {
	t.Helper()
	p, err := new(edwards25519.Point).SetBytes(torsionBytes(t, i))
	require.NoError(t, err)
	return p
}

// transfer is a structured message used to exercise the Signable paths.
type transfer struct {
	To     [32]byte
	Amount uint64
}

func (transfer) TypeName() string { return "eddsastrict::Transfer" }

func (tr transfer) MarshalBinary() ([]byte, error) {
	out := make([]byte, 40)
	copy(out, tr.To[:])
	binary.LittleEndian.PutUint64(out[32:], tr.Amount)
	return out, nil
}

var errUnencodable = errors.New("cannot encode")

type unencodable struct{}

func (unencodable) TypeName() string               { return "eddsastrict::Unencodable" }
func (unencodable) MarshalBinary() ([]byte, error) { return nil, errUnencodable }
