package policy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/configservice/types"
)

const ContinuousOverrideDescription = "CONTINUOUS_OVERRIDE"

// ResourceTypes is the value shape of a region mapping entry: {"ResourceTypes": [...]}.
type ResourceTypes struct {
	ResourceTypes []string `json:"ResourceTypes"`
}

// Mapping is keyed by region name.
type Mapping map[string]ResourceTypes

// Policy is the recording rule for one region.
type Policy struct {
	Region     string
	Continuous []string
	Excluded   []string
}

// Recorder carries the per-target values that are not part of the regional policy.
type Recorder struct {
	Name             string
	RoleArn          string
	DefaultFrequency types.RecordingFrequency
}

// ParseMapping decodes a region mapping. Blank input is an empty mapping.
func ParseMapping(raw string) (Mapping, error) {
	mapping := Mapping{}

	if strings.TrimSpace(raw) == "" {
		return mapping, nil
	}

	if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
		return Mapping{}, fmt.Errorf("invalid region mapping: %w", err)
	}

	if mapping == nil {
		mapping = Mapping{}
	}

	return mapping, nil
}

func (m Mapping) Lookup(region string) []string {
	entry, exists := m[region]
	if !exists {
		return []string{}
	}

	return append([]string{}, entry.ResourceTypes...)
}

// Regions lists every region named by the mapping.
func (m Mapping) Regions() []string {
	regions := make([]string, 0, len(m))
	for region := range m {
		regions = append(regions, region)
	}

	return regions
}

// Resolve never fails: a region missing from a mapping gets an empty list for that side.
func Resolve(region string, continuous, excluded Mapping) Policy {
	return Policy{
		Region:     region,
		Continuous: continuous.Lookup(region),
		Excluded:   excluded.Lookup(region),
	}
}

// Document builds the exclusion based recorder configuration. Global resource
// types are never recorded and the override block is omitted when no type is
// forced to continuous recording.
func Document(r Recorder, p Policy) types.ConfigurationRecorder {
	recorder := types.ConfigurationRecorder{
		Name:    aws.String(r.Name),
		RoleARN: aws.String(r.RoleArn),
		RecordingGroup: &types.RecordingGroup{
			AllSupported:               false,
			IncludeGlobalResourceTypes: false,
			ExclusionByResourceTypes: &types.ExclusionByResourceTypes{
				ResourceTypes: resourceTypes(p.Excluded),
			},
			RecordingStrategy: &types.RecordingStrategy{
				UseOnly: types.RecordingStrategyTypeExclusionByResourceTypes,
			},
		},
		RecordingMode: &types.RecordingMode{
			RecordingFrequency: r.DefaultFrequency,
		},
	}

	if len(p.Continuous) > 0 {
		recorder.RecordingMode.RecordingModeOverrides = []types.RecordingModeOverride{
			{
				Description:        aws.String(ContinuousOverrideDescription),
				ResourceTypes:      resourceTypes(p.Continuous),
				RecordingFrequency: types.RecordingFrequencyContinuous,
			},
		}
	}

	return recorder
}

func resourceTypes(names []string) []types.ResourceType {
	converted := make([]types.ResourceType, 0, len(names))
	for _, name := range names {
		converted = append(converted, types.ResourceType(name))
	}

	return converted
}
