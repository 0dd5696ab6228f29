package xtream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString decodes JSON fields that Xtream portals serve as either a
// string or a number depending on the panel version
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	*s = FlexString(n.String())
	return nil
}

// String returns the decoded value
func (s FlexString) String() string {
	return string(s)
}

// FlexInt decodes JSON fields that arrive as either an integer or a
// numeric string. Null and empty strings decode to zero.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*i = 0
		return nil
	}

	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		v = strings.TrimSpace(v)
		if v == "" {
			*i = 0
			return nil
		}
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("expected integer or numeric string, got %q", v)
		}
		*i = FlexInt(parsed)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected integer or numeric string, got %s", data)
	}
	parsed, err := n.Int64()
	if err != nil {
		return fmt.Errorf("expected integer, got %s", n)
	}
	*i = FlexInt(parsed)
	return nil
}

// Int64 returns the decoded value
func (i FlexInt) Int64() int64 {
	return int64(i)
}
