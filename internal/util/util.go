package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func InLambda() bool {
	_, inLambda := os.LookupEnv("AWS_LAMBDA_FUNCTION_NAME")
	return inLambda
}

func OtelConfigPresent() bool {
	_, present := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	return present
}

// PartitionFromArn returns the partition segment of an ARN ("aws", "aws-cn", "aws-us-gov").
func PartitionFromArn(arn string) (string, error) {
	parts := strings.SplitN(arn, ":", 3)
	if len(parts) < 3 || parts[0] != "arn" || parts[1] == "" {
		return "", fmt.Errorf("invalid ARN %q, expecting arn:<partition>:...", arn)
	}

	return parts[1], nil
}

func RoleArnFromName(partition, accountId, name string) string {
	return "arn:" + partition + ":iam::" + accountId + ":role/" + name
}

// Chomp trims surrounding whitespace and strips embedded line breaks so operator supplied values stay on one log line.
func Chomp(s string) string {
	s = strings.TrimSpace(s)
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// ParseLogLevel maps a LOG_LEVEL value onto a zerolog level, falling back when the value is empty or unknown.
func ParseLogLevel(level string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(Chomp(level)) {
	case "panic":
		return zerolog.PanicLevel
	case "fatal", "critical":
		return zerolog.FatalLevel
	case "error":
		return zerolog.ErrorLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "info":
		return zerolog.InfoLevel
	case "debug":
		return zerolog.DebugLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return fallback
	}
}

func SetLogLevel(fallback zerolog.Level) {
	level, _ := os.LookupEnv("LOG_LEVEL")
	zerolog.SetGlobalLevel(ParseLogLevel(level, fallback))

	// log.Ctx falls back to the global logger instead of a disabled one.
	zerolog.DefaultContextLogger = &log.Logger
}

// RetryLogger wraps a zerolog.Logger so the AWS SDK can emit retry diagnostics through it.
type RetryLogger struct {
	Log *zerolog.Logger
}

func (l *RetryLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	switch classification {
	case logging.Warn:
		l.Log.Warn().Msgf(format, v...)
	case logging.Debug:
		if strings.Contains(format, "retrying request") {
			l.Log.Info().Msgf(format, v...)
		} else {
			l.Log.Debug().Msgf(format, v...)
		}
	default:
		l.Log.Error().Msgf(format, v...)
	}
}
