package textra

import (
	"encoding/json"
	"strconv"
	"strings"
)

// tokenResponse is the OAuth2 token endpoint body. TexTra reports
// expires_in as a number, but other providers are known to send it as
// a string, so both are tolerated.
type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   looseSeconds `json:"expires_in"`
}

// translateResponse mirrors the TexTra result envelope.
type translateResponse struct {
	Resultset struct {
		Code    looseString `json:"code"`
		Message string      `json:"message"`
		Result  struct {
			Text        string          `json:"text"`
			Information json.RawMessage `json:"information"`
		} `json:"result"`
	} `json:"resultset"`
}

// looseString decodes a JSON value the remote is sloppy about: both
// numbers and strings land as their text form, null as "".
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		*s = ""
		return nil
	}
	if raw[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

func (s looseString) String() string {
	return string(s)
}

// looseSeconds is a duration in whole seconds, sent as a JSON number
// or a numeric string.
type looseSeconds int64

func (s *looseSeconds) UnmarshalJSON(data []byte) error {
	var v looseString
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	if v == "" {
		*s = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(v), 64)
	if err != nil {
		return err
	}
	*s = looseSeconds(f)
	return nil
}
