// Package users wraps core_user_get_users_by_field.
package users

import (
	"context"
	"net/url"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// API wraps the core_user functions of one Moodle site
type API struct {
	client *moodle.Client
}

// New creates a users API using client
func New(client *moodle.Client) *API {
	return &API{client: client}
}

// GetByField returns the users whose field matches one of values. Usernames
// are normalized first unless opts.KeepUsernames is set. Values matching no
// user are left out of the result.
func (a *API) GetByField(ctx context.Context, field Field, values []string, opts LookupOptions) ([]User, *moodle.Response, error) {
	if err := form.Require(map[string]any{"field": field, "values": values}); err != nil {
		return nil, nil, err
	}

	if field == FieldUsername && !opts.KeepUsernames {
		normalized := make([]string, len(values))
		for i, v := range values {
			normalized[i] = NormalizeUsername(v)
		}
		values = normalized
	}

	params := url.Values{
		"field": {field},
	}
	form.List(params, "values", values)

	var users []User
	resp, err := a.client.Get(ctx, "core_user_get_users_by_field", params, &users)
	if err != nil {
		return nil, resp, err
	}
	return users, resp, nil
}
