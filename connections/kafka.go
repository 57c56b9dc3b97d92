package connections

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/logger"
)

// KafkaWriter publishes summaries. Topics are set per message. Nil when no
// bootstrap server is configured.
var KafkaWriter *kafka.Writer

func NewWriter() {
	servers := config.EnvKafkaBootstrapServer()
	if servers == "" {
		logger.Log.Info().Msg("KAFKA_BOOTSTRAP_SERVER not set; summary publishing disabled")
		return
	}
	KafkaWriter = &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(servers, ",")...),
		Balancer:               &kafka.Hash{},
		BatchSize:              config.EnvKafkaWriterBatchSize(),
		BatchBytes:             int64(config.EnvKafkaWriterBatchBytes()),
		BatchTimeout:           time.Duration(config.EnvKafkaWriterBatchTimeoutMs()) * time.Millisecond,
		RequiredAcks:           kafka.RequiredAcks(config.EnvKafkaWriterRequiredAcks()),
		Compression:            compression(config.EnvKafkaWriterCompression()),
		AllowAutoTopicCreation: true,
	}
	logger.Log.Info().Str("servers", servers).Msg("Kafka writer initialized")
}

func compression(name string) kafka.Compression {
	switch strings.ToLower(name) {
	case "gzip":
		return kafka.Gzip
	case "lz4":
		return kafka.Lz4
	case "zstd":
		return kafka.Zstd
	case "none":
		return 0
	default:
		return kafka.Snappy
	}
}
