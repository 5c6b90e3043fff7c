package param

type GlobalOpts struct {
	QueueUrl         string `arg:"-q,--queue-url" help:"override SQS_URL"`
	StackSetName     string `arg:"--stack-set" help:"override BASELINE_STACK_SET_NAME"`
	ExecutionRole    string `arg:"--execution-role" help:"override EXECUTION_ROLE_NAME"`
	ExcludedAccounts string `arg:"-x,--excluded-accounts" help:"override EXCLUDED_ACCOUNTS"`
}

type Targets struct {
	Account string `arg:"-a,--account" help:"only list targets in this account"`
}

type Dispatch struct {
	Event string `arg:"-e,--event,required" help:"path to an EventBridge event JSON file"`
}

type Apply struct {
	Account string `arg:"-a,--account,required" help:"target account"`
	Region  string `arg:"-r,--region,required" help:"target region"`
	Event   string `arg:"--event" default:"cli" help:"event label recorded on the work item"`
	DryRun  bool   `arg:"-n,--dry-run" help:"print the recorder document without applying it"`
}

type Config struct{}
