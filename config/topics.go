package config

import "fmt"

// Kafka topic for ledger summaries built from the ledger stream
func TopicLedgerSummaries() string {
	return fmt.Sprintf("%s-ledger-summaries", EnvKafkaTopicNamespace())
}

// Kafka topic for individual transaction summaries
func TopicTransactionSummaries() string {
	return fmt.Sprintf("%s-transaction-summaries", EnvKafkaTopicNamespace())
}
