// Package presentation wraps the user functions of the local_presentation
// plugin.
package presentation

import (
	"context"
	"net/url"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// RoleUser is a user holding a role in a course
type RoleUser struct {
	Username  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// API wraps the local_presentation functions of one Moodle site
type API struct {
	client *moodle.Client
}

// New creates a presentation API using client
func New(client *moodle.Client) *API {
	return &API{client: client}
}

// CourseRoleUsers returns the users holding role (a role shortname such as
// "editingteacher") in the course with shortname course
func (a *API) CourseRoleUsers(ctx context.Context, course, role string) ([]RoleUser, *moodle.Response, error) {
	if err := form.Require(map[string]any{"course": course, "role": role}); err != nil {
		return nil, nil, err
	}

	params := url.Values{
		"course": {course},
		"role":   {role},
	}

	var users []RoleUser
	resp, err := a.client.Post(ctx, "local_presentation_get_course_role_users", params, &users)
	if err != nil {
		return nil, resp, err
	}
	return users, resp, nil
}
