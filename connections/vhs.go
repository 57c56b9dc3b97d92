package connections

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/xrpscan/explorer/logger"
)

// Validator is one entry of the validator history service list.
type Validator struct {
	SigningKey string `json:"signing_key"`
	MasterKey  string `json:"master_key,omitempty"`
	Domain     string `json:"domain,omitempty"`
	UNL        string `json:"unl,omitempty"`
}

// ValidatorList holds validators unique by signing key, in response order,
// and how many of them the configured publisher lists.
type ValidatorList struct {
	Validators []Validator `json:"validators"`
	UNLCount   int         `json:"unl_count"`
}

type VHSClient struct {
	client    *resty.Client
	network   string
	publisher string
}

func NewVHSClient(baseURL, network, publisher string, timeout time.Duration) *VHSClient {
	return &VHSClient{
		client:    resty.New().SetHostURL(baseURL).SetTimeout(timeout),
		network:   network,
		publisher: publisher,
	}
}

// Validators fetches GET /validators/{network}.
func (v *VHSClient) Validators(ctx context.Context) (*ValidatorList, error) {
	var body struct {
		Validators []Validator `json:"validators"`
	}
	resp, err := v.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/validators/" + url.PathEscape(v.network))
	if err != nil {
		return nil, fmt.Errorf("fetch validators: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch validators: unexpected status %d", resp.StatusCode())
	}

	list := &ValidatorList{Validators: []Validator{}}
	seen := make(map[string]int, len(body.Validators))
	for _, validator := range body.Validators {
		if i, ok := seen[validator.SigningKey]; ok {
			list.Validators[i] = validator
			continue
		}
		seen[validator.SigningKey] = len(list.Validators)
		list.Validators = append(list.Validators, validator)
	}
	for _, validator := range list.Validators {
		if v.publisher != "" && validator.UNL == v.publisher {
			list.UNLCount++
		}
	}
	logger.Log.Debug().Str("network", v.network).Int("validators", len(list.Validators)).Int("unl_count", list.UNLCount).Msg("Fetched validators")
	return list, nil
}
