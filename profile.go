package fanburst

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
)

// Count wraps a counter so the profile keeps the {"total": n} shape.
type Count struct {
	Total int64 `json:"total"`
}

// Profile is the normalized Fanburst user profile.
// Optional string fields default to "" and counters to 0.
type Profile struct {
	// JSON is the decoded response object, kept for downstream inspection.
	JSON map[string]any `json:"-"`

	Provider    string `json:"provider"`
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	Permalink   string `json:"permalink"`
	URL         string `json:"url"`
	Avatar      string `json:"avatar"`
	Location    string `json:"location"`

	// Raw is the response body exactly as received.
	Raw []byte `json:"-"`

	Followers  Count `json:"followers"`
	Followings Count `json:"followings"`
	Tracks     Count `json:"tracks"`
}

// ParseProfile builds a Profile from the body of the /me endpoint.
// Decoding errors are returned as produced by encoding/json; a body that is
// valid JSON but not an object yields *json.UnmarshalTypeError. Optional
// fields holding an unexpected type fall back to "" or 0.
func ParseProfile(body []byte) (*Profile, error) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeFor[map[string]any]()}
	}

	// Decoded separately so large numeric ids keep every digit.
	var ident struct {
		ID flexString `json:"id"`
	}
	if err := json.Unmarshal(body, &ident); err != nil {
		return nil, err
	}

	id := string(ident.ID)
	return &Profile{
		Provider:    ProviderName,
		ID:          id,
		DisplayName: id,
		Username:    str(obj, "name"),
		Permalink:   str(obj, "permalink"),
		URL:         str(obj, "url"),
		Avatar:      str(obj, "avatar_url"),
		Location:    str(obj, "location"),
		Followers:   Count{Total: count(obj, "followers_count")},
		Followings:  Count{Total: count(obj, "followings_count")},
		Tracks:      Count{Total: count(obj, "track_count")},
		Raw:         bytes.Clone(body),
		JSON:        obj,
	}, nil
}

// str returns obj[key] when it is a string, "" otherwise.
func str(obj map[string]any, key string) string {
	v, _ := obj[key].(string)
	return v
}

// count returns obj[key] as an integer when it is a number or a numeric
// string, 0 otherwise. Fractions are truncated.
func count(obj map[string]any, key string) int64 {
	switch v := obj[key].(type) {
	case float64:
		return int64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return int64(f)
	default:
		return 0
	}
}

// flexString accepts a JSON string or number; ids have been served as both.
// Any other value decodes to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
	}
	return nil
}
