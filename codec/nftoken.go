package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const NFTokenIDLength = 64

// Taxon scrambling constants, see XLS-20 "NFTokenTaxon"
const (
	taxonMultiplier uint32 = 384160001
	taxonIncrement  uint32 = 2459
)

// NFToken flags stored in the first 16 bits of an NFTokenID
const (
	NFTokenBurnable     uint16 = 0x0001
	NFTokenOnlyXRP      uint16 = 0x0002
	NFTokenTrustLine    uint16 = 0x0004
	NFTokenTransferable uint16 = 0x0008
	NFTokenMutable      uint16 = 0x0010
)

var nftFlagNames = []struct {
	Flag uint16
	Name string
}{
	{NFTokenBurnable, "lsfBurnable"},
	{NFTokenOnlyXRP, "lsfOnlyXRP"},
	{NFTokenTrustLine, "lsfTrustLine"},
	{NFTokenTransferable, "lsfTransferable"},
	{NFTokenMutable, "lsfMutable"},
}

var ErrInvalidNFTokenID = errors.New("invalid NFTokenID")

// NFTokenID is the decomposed form of a 64 hex character NFToken identifier
type NFTokenID struct {
	ID          string `json:"id"`
	Flags       uint16 `json:"flags"`
	TransferFee uint16 `json:"transfer_fee"`
	Issuer      string `json:"issuer"`
	Taxon       uint32 `json:"taxon"`
	Serial      uint32 `json:"serial"`
}

// ScrambleTaxon applies the ledger's taxon cipher. The cipher is an XOR with a
// value derived from the serial, so applying it twice returns the input.
func ScrambleTaxon(taxon, serial uint32) uint32 {
	return taxon ^ (taxonMultiplier*serial + taxonIncrement)
}

// DecodeNFTokenID splits id into its fixed-offset fields and descrambles the
// taxon.
func DecodeNFTokenID(id string) (NFTokenID, error) {
	if len(id) != NFTokenIDLength || !isHex(id) {
		return NFTokenID{}, fmt.Errorf("%w: %q", ErrInvalidNFTokenID, id)
	}
	id = strings.ToUpper(id)

	flags, _ := strconv.ParseUint(id[0:4], 16, 16)
	transferFee, _ := strconv.ParseUint(id[4:8], 16, 16)
	scrambled, _ := strconv.ParseUint(id[48:56], 16, 32)
	serial, _ := strconv.ParseUint(id[56:64], 16, 32)

	return NFTokenID{
		ID:          id,
		Flags:       uint16(flags),
		TransferFee: uint16(transferFee),
		Issuer:      id[8:48],
		Taxon:       ScrambleTaxon(uint32(scrambled), uint32(serial)),
		Serial:      uint32(serial),
	}, nil
}

// ScrambledTaxon returns the taxon field as it is stored in the identifier.
func (t NFTokenID) ScrambledTaxon() uint32 {
	return ScrambleTaxon(t.Taxon, t.Serial)
}

// FlagNames lists the names of the set flags in bit order.
func (t NFTokenID) FlagNames() []string {
	names := []string{}
	for _, f := range nftFlagNames {
		if t.Flags&f.Flag != 0 {
			names = append(names, f.Name)
		}
	}
	return names
}

// TransferFeePercent renders the transfer fee (units of 1/100000) as a
// percentage, e.g. 5000 -> "5%".
func (t NFTokenID) TransferFeePercent() string {
	return decimal.NewFromInt(int64(t.TransferFee)).Shift(-3).String() + "%"
}

// IssuerAddress encodes the issuer account id as a classic address. An
// undecodable issuer yields an empty string.
func (t NFTokenID) IssuerAddress() string {
	address, err := EncodeAccountID(t.Issuer)
	if err != nil {
		return ""
	}
	return address
}
