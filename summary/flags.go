package summary

import "fmt"

type flagName struct {
	Bit  uint32
	Name string
}

// Universal transaction flags
var universalFlags = []flagName{
	{0x80000000, "tfFullyCanonicalSig"},
	{0x40000000, "tfInnerBatchTxn"},
}

// Ref: https://xrpl.org/docs/references/protocol/transactions/common-fields#flags-field
var transactionFlags = map[string][]flagName{
	"Payment": {
		{0x00010000, "tfNoRippleDirect"},
		{0x00020000, "tfPartialPayment"},
		{0x00040000, "tfLimitQuality"},
	},
	"OfferCreate": {
		{0x00010000, "tfPassive"},
		{0x00020000, "tfImmediateOrCancel"},
		{0x00040000, "tfFillOrKill"},
		{0x00080000, "tfSell"},
		{0x00100000, "tfHybrid"},
	},
	"TrustSet": {
		{0x00010000, "tfSetfAuth"},
		{0x00020000, "tfSetNoRipple"},
		{0x00040000, "tfClearNoRipple"},
		{0x00100000, "tfSetFreeze"},
		{0x00200000, "tfClearFreeze"},
		{0x00400000, "tfSetDeepFreeze"},
		{0x00800000, "tfClearDeepFreeze"},
	},
	"AccountSet": {
		{0x00010000, "tfRequireDestTag"},
		{0x00020000, "tfOptionalDestTag"},
		{0x00040000, "tfRequireAuth"},
		{0x00080000, "tfOptionalAuth"},
		{0x00100000, "tfDisallowXRP"},
		{0x00200000, "tfAllowXRP"},
	},
	"PaymentChannelClaim": {
		{0x00010000, "tfRenew"},
		{0x00020000, "tfClose"},
	},
	"NFTokenMint": {
		{0x00000001, "tfBurnable"},
		{0x00000002, "tfOnlyXRP"},
		{0x00000004, "tfTrustLine"},
		{0x00000008, "tfTransferable"},
		{0x00000010, "tfMutable"},
	},
	"NFTokenCreateOffer": {
		{0x00000001, "tfSellNFToken"},
	},
	"EnableAmendment": {
		{0x00010000, "tfGotMajority"},
		{0x00020000, "tfLostMajority"},
	},
	"AMMDeposit": {
		{0x00010000, "tfLPToken"},
		{0x00080000, "tfSingleAsset"},
		{0x00100000, "tfTwoAsset"},
		{0x00200000, "tfOneAssetLPToken"},
		{0x00400000, "tfLimitLPToken"},
		{0x00800000, "tfTwoAssetIfEmpty"},
	},
	"AMMWithdraw": {
		{0x00010000, "tfLPToken"},
		{0x00020000, "tfWithdrawAll"},
		{0x00040000, "tfOneAssetWithdrawAll"},
		{0x00080000, "tfSingleAsset"},
		{0x00100000, "tfTwoAsset"},
		{0x00200000, "tfOneAssetLPToken"},
		{0x00400000, "tfLimitLPToken"},
	},
	"AMMClawback": {
		{0x00000001, "tfClawTwoAssets"},
	},
	"MPTokenIssuanceCreate": {
		{0x00000002, "tfMPTCanLock"},
		{0x00000004, "tfMPTRequireAuth"},
		{0x00000008, "tfMPTCanEscrow"},
		{0x00000010, "tfMPTCanTrade"},
		{0x00000020, "tfMPTCanTransfer"},
		{0x00000040, "tfMPTCanClawback"},
	},
	"MPTokenAuthorize": {
		{0x00000001, "tfMPTUnauthorize"},
	},
	"MPTokenIssuanceSet": {
		{0x00000001, "tfMPTLock"},
		{0x00000002, "tfMPTUnlock"},
	},
	"XChainModifyBridge": {
		{0x00010000, "tfClearAccountCreateAmount"},
	},
}

// Flags names the set bits of a transaction's Flags field. Type specific
// flags come first, then universal flags. Bits without a name are reported
// together as one hex mask.
func Flags(transactionType string, flags uint32) []string {
	names := []string{}
	rest := flags
	for _, table := range [][]flagName{transactionFlags[transactionType], universalFlags} {
		for _, f := range table {
			if rest&f.Bit != 0 {
				names = append(names, f.Name)
				rest &^= f.Bit
			}
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%08X", rest))
	}
	return names
}

// HasFlag reports whether the named flag of transactionType is set.
func HasFlag(transactionType string, flags uint32, name string) bool {
	for _, table := range [][]flagName{transactionFlags[transactionType], universalFlags} {
		for _, f := range table {
			if f.Name == name {
				return flags&f.Bit != 0
			}
		}
	}
	return false
}
