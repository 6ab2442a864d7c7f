package store

import (
	"encoding/base64"

	"taskdesk/pkg/model"
)

// Encode applies the reversible storage encoding used for credential fields
// in the local users file. It is a format transform, not a security
// boundary: the sheet holds the same values in plaintext.
func Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// Decode reverses Encode. Input that is not valid base64 is returned
// unchanged, which keeps hand-edited or pre-encoding files loadable.
func Decode(s string) string {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(b)
}

// EncodeUsers transforms an in-memory account collection into its on-disk
// form: username, password and full name encoded, role left plain.
func EncodeUsers(users map[string]model.User) map[string]model.User {
	encoded := make(map[string]model.User, len(users))
	for username, u := range users {
		encoded[Encode(username)] = model.User{
			Password: Encode(u.Password),
			Role:     u.Role,
			FullName: Encode(u.FullName),
		}
	}
	return encoded
}

// DecodeUsers reverses EncodeUsers.
func DecodeUsers(raw map[string]model.User) map[string]model.User {
	users := make(map[string]model.User, len(raw))
	for username, u := range raw {
		users[Decode(username)] = model.User{
			Password: Decode(u.Password),
			Role:     u.Role,
			FullName: Decode(u.FullName),
		}
	}
	return users
}
