package domain

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaritalStatus is the civil status recorded for the client.
type MaritalStatus int

const (
	MaritalStatusUnknown MaritalStatus = iota
	Single
	Married
	Divorced
	Widowed
	RegisteredPartnership
)

// Legacy numeric codes used by the client records.
var maritalStatusCodes = map[int]MaritalStatus{
	0: Single,
	1: Married,
	2: Divorced,
	3: RegisteredPartnership,
	4: Widowed,
}

var maritalStatusNames = map[string]MaritalStatus{
	"single":                 Single,
	"married":                Married,
	"divorced":               Divorced,
	"widowed":                Widowed,
	"registered_partnership": RegisteredPartnership,
}

func (ms MaritalStatus) String() string {
	switch ms {
	case Single:
		return "single"
	case Married:
		return "married"
	case Divorced:
		return "divorced"
	case Widowed:
		return "widowed"
	case RegisteredPartnership:
		return "registered_partnership"
	default:
		return "unknown"
	}
}

// ParseMaritalStatus accepts a name or a legacy numeric code.
func ParseMaritalStatus(s string) (MaritalStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "unknown" {
		return MaritalStatusUnknown, nil
	}
	if code, err := strconv.Atoi(s); err == nil {
		if ms, ok := maritalStatusCodes[code]; ok {
			return ms, nil
		}
		return MaritalStatusUnknown, fmt.Errorf("unknown marital status code %d", code)
	}
	if ms, ok := maritalStatusNames[s]; ok {
		return ms, nil
	}
	return MaritalStatusUnknown, fmt.Errorf("unknown marital status %q", s)
}

func (ms *MaritalStatus) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseMaritalStatus(node.Value)
	if err != nil {
		return err
	}
	*ms = v
	return nil
}

func (ms MaritalStatus) MarshalYAML() (interface{}, error) { return ms.String(), nil }

func (ms *MaritalStatus) UnmarshalText(text []byte) error {
	v, err := ParseMaritalStatus(string(text))
	if err != nil {
		return err
	}
	*ms = v
	return nil
}

func (ms MaritalStatus) MarshalText() ([]byte, error) { return []byte(ms.String()), nil }

// MarriageDuration is the bucketed length of the marriage at the event date.
type MarriageDuration int

const (
	MarriageDurationUnknown MarriageDuration = iota
	AtLeastFiveYears
	LessThanFiveYears
)

func (md MarriageDuration) String() string {
	switch md {
	case AtLeastFiveYears:
		return "at_least_5_years"
	case LessThanFiveYears:
		return "less_than_5_years"
	default:
		return "unknown"
	}
}

// ParseMarriageDuration accepts a bucket name or the legacy codes 0 (at
// least five years) and 1 (less than five years).
func ParseMarriageDuration(s string) (MarriageDuration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return MarriageDurationUnknown, nil
	case "0", "at_least_5_years":
		return AtLeastFiveYears, nil
	case "1", "less_than_5_years":
		return LessThanFiveYears, nil
	}
	return MarriageDurationUnknown, fmt.Errorf("unknown marriage duration %q", s)
}

func (md *MarriageDuration) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseMarriageDuration(node.Value)
	if err != nil {
		return err
	}
	*md = v
	return nil
}

func (md MarriageDuration) MarshalYAML() (interface{}, error) { return md.String(), nil }

func (md *MarriageDuration) UnmarshalText(text []byte) error {
	v, err := ParseMarriageDuration(string(text))
	if err != nil {
		return err
	}
	*md = v
	return nil
}

func (md MarriageDuration) MarshalText() ([]byte, error) { return []byte(md.String()), nil }

// Sex of a person, used for AVS widow/widower rules.
type Sex int

const (
	SexUnknown Sex = iota
	Female
	Male
)

func (s Sex) String() string {
	switch s {
	case Female:
		return "female"
	case Male:
		return "male"
	default:
		return "unknown"
	}
}

func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown":
		return SexUnknown, nil
	case "f", "female", "femme":
		return Female, nil
	case "m", "male", "homme":
		return Male, nil
	}
	return SexUnknown, fmt.Errorf("unknown sex %q", s)
}

func (s *Sex) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseSex(node.Value)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Sex) MarshalYAML() (interface{}, error) { return s.String(), nil }

func (s *Sex) UnmarshalText(text []byte) error {
	v, err := ParseSex(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func (s Sex) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Entitlement is the outcome of a spouse-pension guard.
//
// Due and NonDue are mutually exclusive but not exhaustive: a partnered
// client whose situation matches neither rule is Indeterminate and needs a
// product decision before any rente or capital is attributed.
type Entitlement int

const (
	NotApplicable Entitlement = iota
	Due
	NonDue
	Indeterminate
)

func (e Entitlement) String() string {
	switch e {
	case Due:
		return "due"
	case NonDue:
		return "non_due"
	case Indeterminate:
		return "indeterminate"
	default:
		return "not_applicable"
	}
}

func (e Entitlement) MarshalText() ([]byte, error) { return []byte(e.String()), nil }
