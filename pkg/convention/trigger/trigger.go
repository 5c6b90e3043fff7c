package trigger

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	SourceControlTower = "aws.controltower"
	SourceLambda       = "aws.lambda"

	EventCreateManagedAccount = "CreateManagedAccount"
	EventUpdateManagedAccount = "UpdateManagedAccount"
	EventUpdateLandingZone    = "UpdateLandingZone"
	EventCreateFunction       = "CreateFunction20150331"
	// Only this UpdateFunctionConfiguration variant triggers a rollout.
	EventUpdateFunctionConfig = "UpdateFunctionConfiguration20150331v2"

	LabelControlTower       = "controltower"
	LabelLambdaCreate       = "lambda-create"
	LabelLambdaConfigUpdate = "lambda-config-update"
)

var ErrMalformedTrigger = errors.New("malformed trigger event")

type Name string

const (
	AccountCreated        Name = "AccountCreated"
	AccountUpdated        Name = "AccountUpdated"
	LandingZoneUpdated    Name = "LandingZoneUpdated"
	FunctionCreated       Name = "FunctionCreated"
	FunctionConfigChanged Name = "FunctionConfigChanged"
)

// Event is one of AccountLifecycle, SelfUpdate or Unrecognized.
type Event interface {
	Source() string
	EventName() string
	trigger()
}

// Actionable events fan out to targets.
type Actionable interface {
	Event
	// Filter is the account the event is scoped to, empty for every account.
	Filter() string
	Label() string
}

type AccountLifecycle struct {
	Name    Name
	Account string
}

type SelfUpdate struct {
	Name Name
}

type Unrecognized struct {
	source    string
	eventName string
	Reason    string
}

func (AccountLifecycle) Source() string { return SourceControlTower }
func (e AccountLifecycle) EventName() string {
	switch e.Name {
	case AccountCreated:
		return EventCreateManagedAccount
	case AccountUpdated:
		return EventUpdateManagedAccount
	default:
		return EventUpdateLandingZone
	}
}
func (e AccountLifecycle) Filter() string { return e.Account }
func (AccountLifecycle) Label() string    { return LabelControlTower }
func (AccountLifecycle) trigger()         {}

func (SelfUpdate) Source() string { return SourceLambda }
func (e SelfUpdate) EventName() string {
	if e.Name == FunctionCreated {
		return EventCreateFunction
	}
	return EventUpdateFunctionConfig
}
func (SelfUpdate) Filter() string { return "" }
func (e SelfUpdate) Label() string {
	if e.Name == FunctionCreated {
		return LabelLambdaCreate
	}
	return LabelLambdaConfigUpdate
}
func (SelfUpdate) trigger() {}

func (e Unrecognized) Source() string    { return e.source }
func (e Unrecognized) EventName() string { return e.eventName }
func (Unrecognized) trigger()            {}

// envelope holds only the EventBridge fields classification reads.
type envelope struct {
	Source string          `json:"source"`
	Detail json.RawMessage `json:"detail"`
}

type managedAccountStatus struct {
	Account *struct {
		AccountId string `json:"accountId"`
	} `json:"account"`
}

type controlTowerDetail struct {
	EventName           string `json:"eventName"`
	ServiceEventDetails *struct {
		CreateManagedAccountStatus *managedAccountStatus `json:"createManagedAccountStatus"`
		UpdateManagedAccountStatus *managedAccountStatus `json:"updateManagedAccountStatus"`
	} `json:"serviceEventDetails"`
}

type cloudTrailDetail struct {
	EventName string `json:"eventName"`
}

func malformed(path string) error {
	return fmt.Errorf("%w: missing %s", ErrMalformedTrigger, path)
}

// Parse classifies a raw EventBridge payload. Payloads from a recognized
// source that lack the fields the classification depends on are malformed;
// everything else that cannot be acted on is Unrecognized.
func Parse(raw []byte) (Event, error) {
	var parsed envelope
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTrigger, err)
	}

	switch parsed.Source {
	case "":
		return Unrecognized{Reason: "no event source"}, nil

	case SourceControlTower:
		var detail controlTowerDetail
		if err := decodeDetail(parsed.Detail, &detail); err != nil {
			return nil, err
		}

		switch detail.EventName {
		case "":
			return nil, malformed("detail.eventName")
		case EventCreateManagedAccount:
			account, err := managedAccount(detail, "createManagedAccountStatus")
			if err != nil {
				return nil, err
			}
			return AccountLifecycle{Name: AccountCreated, Account: account}, nil
		case EventUpdateManagedAccount:
			account, err := managedAccount(detail, "updateManagedAccountStatus")
			if err != nil {
				return nil, err
			}
			return AccountLifecycle{Name: AccountUpdated, Account: account}, nil
		case EventUpdateLandingZone:
			return AccountLifecycle{Name: LandingZoneUpdated}, nil
		default:
			return Unrecognized{source: parsed.Source, eventName: detail.EventName, Reason: "event name not handled"}, nil
		}

	case SourceLambda:
		var detail cloudTrailDetail
		if err := decodeDetail(parsed.Detail, &detail); err != nil {
			return nil, err
		}

		switch detail.EventName {
		case "":
			return nil, malformed("detail.eventName")
		case EventCreateFunction:
			return SelfUpdate{Name: FunctionCreated}, nil
		case EventUpdateFunctionConfig:
			return SelfUpdate{Name: FunctionConfigChanged}, nil
		default:
			return Unrecognized{source: parsed.Source, eventName: detail.EventName, Reason: "event name not handled"}, nil
		}

	default:
		return Unrecognized{source: parsed.Source, Reason: "event source not handled"}, nil
	}
}

func decodeDetail(raw json.RawMessage, into any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return malformed("detail")
	}

	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("%w: detail: %v", ErrMalformedTrigger, err)
	}

	return nil
}

func managedAccount(detail controlTowerDetail, status string) (string, error) {
	path := "detail.serviceEventDetails." + status + ".account.accountId"

	if detail.ServiceEventDetails == nil {
		return "", malformed(path)
	}

	var accountStatus *managedAccountStatus
	if status == "createManagedAccountStatus" {
		accountStatus = detail.ServiceEventDetails.CreateManagedAccountStatus
	} else {
		accountStatus = detail.ServiceEventDetails.UpdateManagedAccountStatus
	}

	if accountStatus == nil || accountStatus.Account == nil || accountStatus.Account.AccountId == "" {
		return "", malformed(path)
	}

	return accountStatus.Account.AccountId, nil
}
