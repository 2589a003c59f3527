package domain

import "time"

// Presence flag values stored in users.on_off.
const (
	OnOffOnline  = "ON"
	OnOffOffline = "OFF"
)

type User struct {
	ID              string
	Name            string
	Email           string // unique identity key
	PasswordHash    string // argon2 encoded, legacy rows may be bcrypt
	CooperationType string
	Phone           string
	Techs           string
	OnOff           *string // ON, OFF or nil
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ParseOnOff maps the registration form's flag onto the stored value.
// Anything other than exactly "online" or "offline" is stored as NULL.
func ParseOnOff(flag string) *string {
	var v string
	switch flag {
	case "online":
		v = OnOffOnline
	case "offline":
		v = OnOffOffline
	default:
		return nil
	}
	return &v
}
