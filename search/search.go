package search

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/xrpscan/explorer/codec"
	"github.com/xrpscan/explorer/logger"
)

// Route types
const (
	TypeLedger      = "ledgers"
	TypeAccount     = "accounts"
	TypeTransaction = "transactions"
	TypeNFT         = "nft"
	TypeMPT         = "mpt"
	TypeToken       = "token"
	TypeValidator   = "validators"
)

var (
	decimalRegex      = regexp.MustCompile(`^\d+$`)
	hash256Regex      = regexp.MustCompile(`^[0-9A-Fa-f]{64}$`)
	hash192Regex      = regexp.MustCompile(`^[0-9A-Fa-f]{48}$`)
	currencyRegex     = regexp.MustCompile(`^[a-zA-Z0-9]{3,}[.:+-]r[1-9A-HJ-NP-Za-km-z]{24,34}$`)
	fullCurrencyRegex = regexp.MustCompile(`^[0-9A-Fa-f]{40}[.:+-]r[1-9A-HJ-NP-Za-km-z]{24,34}$`)
	validatorRegex    = regexp.MustCompile(`^n[1-9A-HJ-NP-Za-km-z]{25,55}$`)
	ctidRegex         = regexp.MustCompile(`^[cC][0-9A-Fa-f]{15}$`)
	separators        = regexp.MustCompile(`[.:+-]`)
)

// Route is where a search query leads.
type Route struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// TransactionLookup reports whether hash names a transaction known to the
// node. Any error means it does not.
type TransactionLookup interface {
	LookupTransaction(ctx context.Context, hash string) error
}

type Router struct {
	Lookup TransactionLookup
}

func NewRouter(lookup TransactionLookup) *Router {
	return &Router{Lookup: lookup}
}

// Clean trims whitespace and surrounding quotes from a query.
func Clean(query string) string {
	q := strings.TrimSpace(query)
	q = strings.Trim(q, `"'`)
	return strings.TrimSpace(q)
}

// Fallback is the path of the generic search results page.
func Fallback(query string) string {
	return "/search/" + url.PathEscape(Clean(query))
}

// Route classifies query. The first matching rule wins:
//
//	digits                       ledger index
//	classic address              account
//	64 hex                       transaction, or NFT when the node does not know it
//	48 hex                       MPT issuance
//	X-address, address:tag       account
//	currency.issuer              token
//	validator public key         validator
//	CTID                         transaction
//
// Route returns nil when nothing matches.
func (r *Router) Route(ctx context.Context, query string) *Route {
	id := Clean(query)
	if id == "" {
		return nil
	}

	if decimalRegex.MatchString(id) {
		return &Route{Type: TypeLedger, Path: "/ledgers/" + id}
	}
	if codec.IsClassicAddress(id) {
		return &Route{Type: TypeAccount, Path: "/accounts/" + codec.NormalizeAccount(id)}
	}
	if hash256Regex.MatchString(id) {
		upper := strings.ToUpper(id)
		if r.isTransaction(ctx, upper) {
			return &Route{Type: TypeTransaction, Path: "/transactions/" + upper}
		}
		return &Route{Type: TypeNFT, Path: "/nft/" + upper}
	}
	if hash192Regex.MatchString(id) {
		return &Route{Type: TypeMPT, Path: "/mpt/" + strings.ToUpper(id)}
	}
	if codec.IsXAddress(id) || codec.IsClassicAddress(strings.Split(id, ":")[0]) {
		return &Route{Type: TypeAccount, Path: "/accounts/" + codec.NormalizeAccount(id)}
	}
	if currencyRegex.MatchString(id) || fullCurrencyRegex.MatchString(id) {
		parts := separators.Split(id, -1)
		if len(parts) > 1 && codec.IsClassicAddress(parts[1]) {
			return &Route{Type: TypeToken, Path: "/token/" + parts[0] + "." + parts[1]}
		}
	}
	if validatorRegex.MatchString(id) {
		return &Route{Type: TypeValidator, Path: "/validators/" + codec.NormalizeAccount(id)}
	}
	if ctidRegex.MatchString(id) {
		return &Route{Type: TypeTransaction, Path: "/transactions/" + strings.ToUpper(id)}
	}
	return nil
}

func (r *Router) isTransaction(ctx context.Context, hash string) bool {
	if r.Lookup == nil {
		return false
	}
	if err := r.Lookup.LookupTransaction(ctx, hash); err != nil {
		logger.Log.Debug().Str("hash", hash).Err(err).Msg("Hash is not a known transaction")
		return false
	}
	return true
}
