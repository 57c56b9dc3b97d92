package classify

type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionCancel  Action = "CANCEL"
	ActionFinish  Action = "FINISH"
	ActionModify  Action = "MODIFY"
	ActionSend    Action = "SEND"
	ActionUnknown Action = "UNKNOWN"
)

type Category string

const (
	CategoryPayment Category = "PAYMENT"
	CategoryDEX     Category = "DEX"
	CategoryAccount Category = "ACCOUNT"
	CategoryNFT     Category = "NFT"
	CategoryXChain  Category = "XCHAIN"
	CategoryMPT     Category = "MPT"
	CategoryPseudo  Category = "PSEUDO"
	CategoryOther   Category = "OTHER"
)

// Categories in display order
var Categories = []Category{
	CategoryPayment,
	CategoryDEX,
	CategoryAccount,
	CategoryNFT,
	CategoryXChain,
	CategoryMPT,
	CategoryPseudo,
	CategoryOther,
}

type Classification struct {
	Action   Action   `json:"action"`
	Category Category `json:"category"`
}

var Unknown = Classification{Action: ActionUnknown, Category: CategoryOther}

// Ref: https://xrpl.org/docs/references/protocol/transactions/types
var actions = map[string]Action{
	"AccountDelete":                     ActionFinish,
	"AccountSet":                        ActionModify,
	"AMMBid":                            ActionModify,
	"AMMClawback":                       ActionSend,
	"AMMCreate":                         ActionCreate,
	"AMMDelete":                         ActionCancel,
	"AMMDeposit":                        ActionSend,
	"AMMVote":                           ActionModify,
	"AMMWithdraw":                       ActionSend,
	"Batch":                             ActionSend,
	"CheckCancel":                       ActionCancel,
	"CheckCash":                         ActionFinish,
	"CheckCreate":                       ActionCreate,
	"Clawback":                          ActionSend,
	"CredentialAccept":                  ActionFinish,
	"CredentialCreate":                  ActionCreate,
	"CredentialDelete":                  ActionCancel,
	"DelegateSet":                       ActionModify,
	"DepositPreauth":                    ActionModify,
	"DIDDelete":                         ActionCancel,
	"DIDSet":                            ActionModify,
	"EnableAmendment":                   ActionModify,
	"EscrowCancel":                      ActionCancel,
	"EscrowCreate":                      ActionCreate,
	"EscrowFinish":                      ActionFinish,
	"LedgerStateFix":                    ActionModify,
	"MPTokenAuthorize":                  ActionModify,
	"MPTokenIssuanceCreate":             ActionCreate,
	"MPTokenIssuanceDestroy":            ActionCancel,
	"MPTokenIssuanceSet":                ActionModify,
	"NFTokenAcceptOffer":                ActionFinish,
	"NFTokenBurn":                       ActionCancel,
	"NFTokenCancelOffer":                ActionCancel,
	"NFTokenCreateOffer":                ActionCreate,
	"NFTokenMint":                       ActionCreate,
	"NFTokenModify":                     ActionModify,
	"OfferCancel":                       ActionCancel,
	"OfferCreate":                       ActionCreate,
	"OracleDelete":                      ActionCancel,
	"OracleSet":                         ActionModify,
	"Payment":                           ActionSend,
	"PaymentChannelClaim":               ActionFinish,
	"PaymentChannelCreate":              ActionCreate,
	"PaymentChannelFund":                ActionModify,
	"PermissionedDomainDelete":          ActionCancel,
	"PermissionedDomainSet":             ActionModify,
	"SetFee":                            ActionModify,
	"SetHook":                           ActionModify,
	"SetRegularKey":                     ActionModify,
	"SignerListSet":                     ActionModify,
	"TicketCreate":                      ActionCreate,
	"TrustSet":                          ActionModify,
	"UNLModify":                         ActionModify,
	"XChainAccountCreateCommit":         ActionSend,
	"XChainAddAccountCreateAttestation": ActionCreate,
	"XChainAddClaimAttestation":         ActionCreate,
	"XChainClaim":                       ActionFinish,
	"XChainCommit":                      ActionSend,
	"XChainCreateBridge":                ActionCreate,
	"XChainCreateClaimID":               ActionCreate,
	"XChainModifyBridge":                ActionModify,
}

var categories = map[string]Category{
	"AccountDelete":                     CategoryAccount,
	"AccountSet":                        CategoryAccount,
	"AMMBid":                            CategoryDEX,
	"AMMClawback":                       CategoryDEX,
	"AMMCreate":                         CategoryDEX,
	"AMMDelete":                         CategoryDEX,
	"AMMDeposit":                        CategoryDEX,
	"AMMVote":                           CategoryDEX,
	"AMMWithdraw":                       CategoryDEX,
	"Batch":                             CategoryOther,
	"CheckCancel":                       CategoryPayment,
	"CheckCash":                         CategoryPayment,
	"CheckCreate":                       CategoryPayment,
	"Clawback":                          CategoryPayment,
	"CredentialAccept":                  CategoryAccount,
	"CredentialCreate":                  CategoryAccount,
	"CredentialDelete":                  CategoryAccount,
	"DelegateSet":                       CategoryAccount,
	"DepositPreauth":                    CategoryAccount,
	"DIDDelete":                         CategoryAccount,
	"DIDSet":                            CategoryAccount,
	"EnableAmendment":                   CategoryPseudo,
	"EscrowCancel":                      CategoryPayment,
	"EscrowCreate":                      CategoryPayment,
	"EscrowFinish":                      CategoryPayment,
	"LedgerStateFix":                    CategoryOther,
	"MPTokenAuthorize":                  CategoryMPT,
	"MPTokenIssuanceCreate":             CategoryMPT,
	"MPTokenIssuanceDestroy":            CategoryMPT,
	"MPTokenIssuanceSet":                CategoryMPT,
	"NFTokenAcceptOffer":                CategoryNFT,
	"NFTokenBurn":                       CategoryNFT,
	"NFTokenCancelOffer":                CategoryNFT,
	"NFTokenCreateOffer":                CategoryNFT,
	"NFTokenMint":                       CategoryNFT,
	"NFTokenModify":                     CategoryNFT,
	"OfferCancel":                       CategoryDEX,
	"OfferCreate":                       CategoryDEX,
	"OracleDelete":                      CategoryOther,
	"OracleSet":                         CategoryOther,
	"Payment":                           CategoryPayment,
	"PaymentChannelClaim":               CategoryPayment,
	"PaymentChannelCreate":              CategoryPayment,
	"PaymentChannelFund":                CategoryPayment,
	"PermissionedDomainDelete":          CategoryAccount,
	"PermissionedDomainSet":             CategoryAccount,
	"SetFee":                            CategoryPseudo,
	"SetHook":                           CategoryAccount,
	"SetRegularKey":                     CategoryAccount,
	"SignerListSet":                     CategoryAccount,
	"TicketCreate":                      CategoryAccount,
	"TrustSet":                          CategoryDEX,
	"UNLModify":                         CategoryPseudo,
	"XChainAccountCreateCommit":         CategoryXChain,
	"XChainAddAccountCreateAttestation": CategoryXChain,
	"XChainAddClaimAttestation":         CategoryXChain,
	"XChainClaim":                       CategoryXChain,
	"XChainCommit":                      CategoryXChain,
	"XChainCreateBridge":                CategoryXChain,
	"XChainCreateClaimID":               CategoryXChain,
	"XChainModifyBridge":                CategoryXChain,
}

// Classify maps a transaction type to its action and category. Unknown types
// map to UNKNOWN/OTHER.
func Classify(transactionType string) Classification {
	return Classification{
		Action:   ActionOf(transactionType),
		Category: CategoryOf(transactionType),
	}
}

func ActionOf(transactionType string) Action {
	if a, ok := actions[transactionType]; ok {
		return a
	}
	return ActionUnknown
}

func CategoryOf(transactionType string) Category {
	if c, ok := categories[transactionType]; ok {
		return c
	}
	return CategoryOther
}

// Known reports whether transactionType is in the classification tables.
func Known(transactionType string) bool {
	_, ok := actions[transactionType]
	return ok
}

// KnownTypes lists every classified transaction type.
func KnownTypes() []string {
	types := make([]string, 0, len(actions))
	for t := range actions {
		types = append(types, t)
	}
	return types
}
