package verification

import (
	"encoding/json"
	"errors"
	"strconv"

	c "gatekeeper/internal/core/domain/common"
)

var ErrUserUnidentifiable = errors.New("verification result carries no identifiable user")

// User is the acting user of a verification callback.
type User struct {
	ID       int64
	Username string
}

// Anonymous is the placeholder used when the callback carries no explicit user
// descriptor at all.
func Anonymous() User {
	return User{Username: "durov"}
}

// Storage is the client-supplied storage blob relayed by the web challenge.
// Its shape is opaque except for the user_auth credential.
type Storage map[string]interface{}

// Dump returns the blob re-encoded as JSON for the audit record.
func (s Storage) Dump() string {
	raw, err := json.Marshal(map[string]interface{}(s))
	if err != nil {
		return "{}"
	}
	return string(raw)
}

// Identify determines the acting user of a callback: the explicit user when it
// carries a numeric id, otherwise the id is lifted from the decoded user_auth
// credential inside the storage blob. A result from which no id can be derived
// is unusable.
func Identify(explicit c.Optional[User], storage Storage) (User, error) {
	user := Anonymous()
	if explicit.IsPresent {
		user = explicit.Value
	}
	if user.ID != 0 {
		return user, nil
	}

	id, err := DecodeUserAuthID(storage)
	if err != nil {
		return User{}, err
	}
	user.ID = id
	return user, nil
}

// DecodeUserAuthID decodes the user_auth field of the storage blob as a
// JSON-encoded credential and lifts its id.
func DecodeUserAuthID(storage Storage) (int64, error) {
	raw, ok := storage["user_auth"].(string)
	if !ok {
		return 0, ErrUserUnidentifiable
	}
	var credential struct {
		ID interface{} `json:"id"`
	}
	if err := json.Unmarshal([]byte(raw), &credential); err != nil {
		return 0, ErrUserUnidentifiable
	}
	id, ok := CoerceID(credential.ID)
	if !ok {
		return 0, ErrUserUnidentifiable
	}
	return id, nil
}

// CoerceID normalizes an id that clients send either as a JSON number or as a
// numeric string.
func CoerceID(v interface{}) (int64, bool) {
	switch id := v.(type) {
	case float64:
		if id == 0 {
			return 0, false
		}
		return int64(id), true
	case string:
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil || parsed == 0 {
			return 0, false
		}
		return parsed, true
	case json.Number:
		parsed, err := id.Int64()
		if err != nil || parsed == 0 {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
