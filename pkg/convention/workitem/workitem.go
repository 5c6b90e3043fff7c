package workitem

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedWorkItem = errors.New("malformed work item")

// WorkItem is one (account, region) update request as carried on the queue.
type WorkItem struct {
	Account string `json:"Account"`
	Region  string `json:"Region"`
	Event   string `json:"Event"`
}

func (w WorkItem) Encode() (string, error) {
	encoded, err := json.Marshal(w)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// Decode requires every field to be present and non-blank.
func Decode(body string) (WorkItem, error) {
	var w WorkItem

	if err := json.Unmarshal([]byte(body), &w); err != nil {
		return WorkItem{}, fmt.Errorf("%w: %v", ErrMalformedWorkItem, err)
	}

	var missing []string
	if strings.TrimSpace(w.Account) == "" {
		missing = append(missing, "Account")
	}
	if strings.TrimSpace(w.Region) == "" {
		missing = append(missing, "Region")
	}
	if strings.TrimSpace(w.Event) == "" {
		missing = append(missing, "Event")
	}

	if len(missing) > 0 {
		return WorkItem{}, fmt.Errorf("%w: missing %s", ErrMalformedWorkItem, strings.Join(missing, ", "))
	}

	return w, nil
}

func (w WorkItem) String() string {
	return w.Account + "/" + w.Region
}
