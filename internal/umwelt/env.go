package umwelt

import (
	"os"
	"path"
	"strings"
)

const (
	EnvQueueUrl            = "SQS_URL"
	EnvExcludedAccounts    = "EXCLUDED_ACCOUNTS"
	EnvResourceTypesMap    = "REGION_RESOURCE_TYPES_MAPPING"
	EnvExclusionsMap       = "REGION_EXCLUSIONS_MAPPING"
	EnvRecorderStrategy    = "CONFIG_RECORDER_STRATEGY"
	EnvRecorderFrequency   = "CONFIG_RECORDER_DEFAULT_RECORDING_FREQUENCY"
	EnvLogLevel            = "LOG_LEVEL"
	EnvStackSetName        = "BASELINE_STACK_SET_NAME"
	EnvExecutionRoleName   = "EXECUTION_ROLE_NAME"
	EnvHandler             = "RECORDER_HANDLER"
	EnvLambdaHandler       = "_HANDLER"
	DefaultStackSetName    = "AWSControlTowerBP-BASELINE-CONFIG"
	DefaultExecutionRole   = "AWSControlTowerExecution"
	DefaultStrategy        = "EXCLUSION"
	DefaultFrequency       = "DAILY"
	DefaultMapping         = "{}"
	DefaultLogLevelInside  = "info"
	DefaultLogLevelOutside = "warn"
)

// GetEnv returns the trimmed value of envar, or fallback when it is unset or blank.
func GetEnv(envar, fallback string) string {
	value, exists := os.LookupEnv(envar)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}

	return strings.TrimSpace(value)
}

// GetHandler names the role this process plays inside Lambda. RECORDER_HANDLER wins,
// otherwise the runtime's _HANDLER is used with any path or file extension stripped.
func GetHandler() string {
	if handler := GetEnv(EnvHandler, ""); handler != "" {
		return strings.ToLower(handler)
	}

	handler := path.Base(GetEnv(EnvLambdaHandler, ""))
	if handler == "." || handler == "/" {
		return ""
	}

	return strings.ToLower(strings.TrimSuffix(handler, path.Ext(handler)))
}
