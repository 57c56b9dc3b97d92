package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvNativeCurrencyCodes(t *testing.T) {
	t.Setenv("NATIVE_CURRENCY_CODES", "")
	assert.Equal(t, []string{"XRP", "PFT"}, EnvNativeCurrencyCodes())

	t.Setenv("NATIVE_CURRENCY_CODES", " XRP, ,ABC ")
	assert.Equal(t, []string{"XRP", "ABC"}, EnvNativeCurrencyCodes())
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("DISPLAY_CURRENCY", "")
	t.Setenv("NETWORK", "")
	t.Setenv("REQUEST_TIMEOUT_MS", "bogus")
	t.Setenv("CACHE_TTL_SECONDS", "-1")

	assert.Equal(t, "PFT", EnvDisplayCurrency())
	assert.Equal(t, "main", EnvNetwork())
	assert.Equal(t, 30*time.Second, EnvRequestTimeout())
	assert.Equal(t, 10*time.Minute, EnvCacheTTL())

	t.Setenv("REQUEST_TIMEOUT_MS", "1500")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	assert.Equal(t, 1500*time.Millisecond, EnvRequestTimeout())
	assert.Equal(t, time.Minute, EnvCacheTTL())
}

func TestTopics(t *testing.T) {
	t.Setenv("KAFKA_TOPIC_NAMESPACE", "testnet")
	assert.Equal(t, "testnet-ledger-summaries", TopicLedgerSummaries())
	assert.Equal(t, "testnet-transaction-summaries", TopicTransactionSummaries())
}
