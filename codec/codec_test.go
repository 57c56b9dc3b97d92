package codec

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesisAccountID = "B5F762798A53D543A014CAF8B297CFF8F2F937E8"
const genesisAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

func TestHexToString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"leading nul dropped", "00414243", "ABC"},
		{"plain ascii", "534F4C4F", "SOLO"},
		{"trailing padding dropped", "5553440000000000", "USD"},
		{"invalid pairs skipped", "41ZZ42", "AB"},
		{"odd length keeps last nibble", "414", "A\x04"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HexToString(tt.in))
		})
	}
}

func TestNetworkCurrency(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"standard code passes through", "USD", "USD"},
		{"native XRP shown as display symbol", "XRP", "PFT"},
		{"native PFT shown as display symbol", "PFT", "PFT"},
		{"non-standard code decoded", "534F4C4F00000000000000000000000000000000", "SOLO"},
		{"three letter non-standard code is marked fake", "5553440000000000000000000000000000000000", "FakeUSD"},
		{"lp token left encoded", "03B1A6C7D9E8F7A6B5C4D3E2F1A0B9C8D7E6F5A4", "03B1A6C7D9E8F7A6B5C4D3E2F1A0B9C8D7E6F5A4"},
		{"hex encoded native code stays fake", "5852500000000000000000000000000000000000", "FakeXRP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultNetwork.Currency(tt.code))
		})
	}
}

func TestNewNetworkDefaults(t *testing.T) {
	n := NewNetwork("", nil)
	assert.Equal(t, DefaultNetwork, n)

	custom := NewNetwork("XRP", []string{"XRP"})
	assert.Equal(t, "XRP", custom.Currency("XRP"))
	assert.Equal(t, "PFT", custom.Currency("PFT"))
}

func TestDecodeNFTokenID(t *testing.T) {
	id := "00081388" + genesisAccountID + "A048C088" + "00000007"

	token, err := DecodeNFTokenID(id)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x0008), token.Flags)
	assert.Equal(t, uint16(5000), token.TransferFee)
	assert.Equal(t, genesisAccountID, token.Issuer)
	assert.Equal(t, uint32(42), token.Taxon)
	assert.Equal(t, uint32(7), token.Serial)
	assert.Equal(t, []string{"lsfTransferable"}, token.FlagNames())
	assert.Equal(t, "5%", token.TransferFeePercent())
	assert.Equal(t, genesisAddress, token.IssuerAddress())
}

func TestDecodeNFTokenIDWrapsAround(t *testing.T) {
	// 384160001 * 100000 overflows 32 bits
	id := "0000" + "0000" + genesisAccountID + "6C0A34E9" + "000186A0"

	token, err := DecodeNFTokenID(strings.ToLower(id))
	require.NoError(t, err)

	assert.Equal(t, uint32(1234), token.Taxon)
	assert.Equal(t, uint32(100000), token.Serial)
	assert.Equal(t, strings.ToUpper(id), token.ID)
}

func TestTaxonRescrambleReproducesField(t *testing.T) {
	ids := []string{
		"000100005822A46A67E5CB8A97A3A2E82E5D2CEA7B5A3C4A3F75C00018E5A400",
		"00081388" + genesisAccountID + "A048C088" + "00000007",
		"000B0C44" + genesisAccountID + "FFFFFFFF" + "FFFFFFFF",
	}
	for _, id := range ids {
		token, err := DecodeNFTokenID(id)
		require.NoError(t, err, id)
		assert.Equal(t, strings.ToUpper(id[48:56]), fmt.Sprintf("%08X", token.ScrambledTaxon()), id)

		again, err := DecodeNFTokenID(id)
		require.NoError(t, err)
		assert.Equal(t, token, again)
	}
}

func TestScrambleTaxonIsInvolution(t *testing.T) {
	for _, serial := range []uint32{0, 1, 7, 100000, 0xFFFFFFFF} {
		for _, taxon := range []uint32{0, 42, 0xDEADBEEF} {
			assert.Equal(t, taxon, ScrambleTaxon(ScrambleTaxon(taxon, serial), serial))
		}
	}
}

func TestDecodeNFTokenIDRejectsMalformed(t *testing.T) {
	for _, id := range []string{"", "00", strings.Repeat("Z", 64), strings.Repeat("0", 63)} {
		_, err := DecodeNFTokenID(id)
		assert.ErrorIs(t, err, ErrInvalidNFTokenID)
	}
}

func TestAddresses(t *testing.T) {
	assert.True(t, IsClassicAddress(genesisAddress))
	assert.False(t, IsClassicAddress("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTx"))
	assert.False(t, IsClassicAddress("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTX"))
	assert.Equal(t, "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTX:5", NormalizeAccount("rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTX:5"))
	assert.False(t, IsClassicAddress(""))
	assert.False(t, IsXAddress(genesisAddress))

	x := NormalizeAccount(genesisAddress + ":12345")
	assert.True(t, strings.HasPrefix(x, "X"), x)
	assert.True(t, IsXAddress(x))

	noTag := NormalizeAccount(genesisAddress + ":false")
	assert.True(t, IsXAddress(noTag))
	assert.NotEqual(t, x, noTag)

	assert.Equal(t, genesisAddress, NormalizeAccount(genesisAddress))
	assert.Equal(t, "bogus:12", NormalizeAccount("bogus:12"))
	assert.Equal(t, genesisAddress+":abc", NormalizeAccount(genesisAddress+":abc"))

	address, err := EncodeAccountID(genesisAccountID)
	require.NoError(t, err)
	assert.Equal(t, genesisAddress, address)

	_, err = EncodeAccountID("ABCD")
	assert.Error(t, err)
}
