package users

import (
	"github.com/s0up4200/muddle/moodle"
)

// Field is a user field core_user_get_users_by_field can match on
type Field = string

// Lookup fields
const (
	FieldID       Field = "id"
	FieldIDNumber Field = "idnumber"
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
)

// LookupOptions change how GetByField sends its values
type LookupOptions struct {
	// KeepUsernames sends username values as given instead of normalizing them
	KeepUsernames bool
}

// User is a user description as returned by Moodle
type User struct {
	ID                   int               `json:"id"`
	Username             string            `json:"username"`
	FirstName            string            `json:"firstname"`
	LastName             string            `json:"lastname"`
	FullName             string            `json:"fullname"`
	Email                string            `json:"email"`
	Address              string            `json:"address,omitempty"`
	Phone1               string            `json:"phone1,omitempty"`
	Phone2               string            `json:"phone2,omitempty"`
	Department           string            `json:"department,omitempty"`
	Institution          string            `json:"institution,omitempty"`
	IDNumber             string            `json:"idnumber,omitempty"`
	Interests            string            `json:"interests,omitempty"`
	FirstAccess          int64             `json:"firstaccess"`
	LastAccess           int64             `json:"lastaccess"`
	Auth                 string            `json:"auth"`
	Suspended            bool              `json:"suspended"`
	Confirmed            bool              `json:"confirmed"`
	Lang                 string            `json:"lang"`
	CalendarType         string            `json:"calendartype,omitempty"`
	Theme                string            `json:"theme"`
	Timezone             string            `json:"timezone"`
	MailFormat           int               `json:"mailformat"`
	Description          string            `json:"description,omitempty"`
	DescriptionFormat    moodle.TextFormat `json:"descriptionformat"`
	City                 string            `json:"city,omitempty"`
	URL                  string            `json:"url,omitempty"`
	Country              string            `json:"country,omitempty"`
	ProfileImageURLSmall string            `json:"profileimageurlsmall"`
	ProfileImageURL      string            `json:"profileimageurl"`
	CustomFields         []CustomField     `json:"customfields,omitempty"`
	Preferences          []Preference      `json:"preferences,omitempty"`
}

// CustomField is a custom profile field value
type CustomField struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
}

// Preference is a user preference
type Preference struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
