package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const address = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

type fakeLookup struct {
	known map[string]bool
	calls []string
}

func (f *fakeLookup) LookupTransaction(ctx context.Context, hash string) error {
	f.calls = append(f.calls, hash)
	if f.known[hash] {
		return nil
	}
	return errors.New("txnNotFound")
}

func TestRoute(t *testing.T) {
	txHash := "E08D6E9754025BA2534A78707605E0601F03ACE063687A0CA1BDDACFCD1698C7"
	nftID := "00081388B5F762798A53D543A014CAF8B297CFF8F2F937E8A048C08800000007"
	lookup := &fakeLookup{known: map[string]bool{txHash: true}}
	r := NewRouter(lookup)

	tests := []struct {
		name  string
		query string
		want  *Route
	}{
		{"ledger index", "12345", &Route{TypeLedger, "/ledgers/12345"}},
		{"classic address", address, &Route{TypeAccount, "/accounts/" + address}},
		{"known transaction", strings.ToLower(txHash), &Route{TypeTransaction, "/transactions/" + txHash}},
		{"unknown hash is an nft", nftID, &Route{TypeNFT, "/nft/" + nftID}},
		{"mpt issuance", "0000012ffd9ee5da93ac614b4db94d7e0fce415ca51bed47", &Route{TypeMPT, "/mpt/0000012FFD9EE5DA93AC614B4DB94D7E0FCE415CA51BED47"}},
		{"token with dot", "USD." + address, &Route{TypeToken, "/token/USD." + address}},
		{"token with dash", "SOLO-" + address, &Route{TypeToken, "/token/SOLO." + address}},
		{"hex token", "534F4C4F00000000000000000000000000000000+" + address, &Route{TypeToken, "/token/534F4C4F00000000000000000000000000000000." + address}},
		{"validator key", "nHUDXa2bJ2G5Q8jZ8h4pAtpo1ZwKs6qjFVEqgVc2tA6B3KoMz3Ny", &Route{TypeValidator, "/validators/nHUDXa2bJ2G5Q8jZ8h4pAtpo1ZwKs6qjFVEqgVc2tA6B3KoMz3Ny"}},
		{"ctid", "c000000100020003", &Route{TypeTransaction, "/transactions/C000000100020003"}},
		{"quoted address", `  "` + address + `" `, &Route{TypeAccount, "/accounts/" + address}},
		{"token with bad issuer", "USD.rNotAnAddress1234567890123", nil},
		{"address with bad checksum", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTX", nil},
		{"tagged address with bad checksum", "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTX:5", nil},
		{"token with bad issuer checksum", "USD.rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTX", nil},
		{"free text", "hello world", nil},
		{"empty", `""`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(context.Background(), tt.query))
		})
	}
	assert.Equal(t, []string{txHash, nftID}, lookup.calls)
}

func TestRouteTaggedAccount(t *testing.T) {
	r := NewRouter(nil)
	got := r.Route(context.Background(), address+":12345")
	require.NotNil(t, got)
	assert.Equal(t, TypeAccount, got.Type)
	assert.True(t, strings.HasPrefix(got.Path, "/accounts/X"), got.Path)

	xAddress := strings.TrimPrefix(got.Path, "/accounts/")
	again := r.Route(context.Background(), xAddress)
	assert.Equal(t, got, again)
}

func TestDigitsNeverReachLookup(t *testing.T) {
	lookup := &fakeLookup{}
	r := NewRouter(lookup)
	// 64 digits is also valid hex
	digits := strings.Repeat("1", 64)
	got := r.Route(context.Background(), digits)
	assert.Equal(t, &Route{TypeLedger, "/ledgers/" + digits}, got)
	assert.Empty(t, lookup.calls)
}

func TestRouteWithoutLookupTreatsHashAsNFT(t *testing.T) {
	hash := strings.Repeat("AB", 32)
	got := NewRouter(nil).Route(context.Background(), hash)
	assert.Equal(t, &Route{TypeNFT, "/nft/" + hash}, got)
}

func TestCleanAndFallback(t *testing.T) {
	assert.Equal(t, "abc", Clean(` "abc" `))
	assert.Equal(t, "abc", Clean(`'abc'`))
	assert.Equal(t, "/search/a%20b", Fallback(`"a b"`))
}
