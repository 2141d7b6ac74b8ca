package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownType = errors.New("unknown person type")

// DecodeTransfer reads a polymorphic person body, picking the concrete
// transfer type from its "type" field. A missing type means a plain person.
func DecodeTransfer(data []byte) (Transfer, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	var t Transfer
	switch strings.ToLower(head.Type) {
	case "", TypePerson:
		t = &PersonDto{}
	case TypeChild:
		t = &ChildDto{}
	case TypeEmployee:
		t = &EmployeeDto{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, head.Type)
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	t.Base().Type = strings.ToLower(head.Type)
	if t.Base().Type == "" {
		t.Base().Type = TypePerson
	}
	return t, nil
}
