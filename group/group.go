package group

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// API wraps the core_group functions of one Moodle site
type API struct {
	client *moodle.Client
}

// New creates a group API using client
func New(client *moodle.Client) *API {
	return &API{client: client}
}

// CreateGroups makes one group per record and returns them with their new ids
func (a *API) CreateGroups(ctx context.Context, groups []Group) ([]Group, *moodle.Response, error) {
	if err := form.Require(map[string]any{"groups": groups}); err != nil {
		return nil, nil, err
	}
	for i, g := range groups {
		if err := form.Require(map[string]any{"courseid": g.CourseID, "name": g.Name}); err != nil {
			return nil, nil, fmt.Errorf("group %d: %w", i, err)
		}
	}

	params := url.Values{}
	if err := form.Records(params, "groups", groups); err != nil {
		return nil, nil, err
	}

	var created []Group
	resp, err := a.client.Post(ctx, "core_group_create_groups", params, &created)
	if err != nil {
		return nil, resp, err
	}
	return created, resp, nil
}

// GetGroups returns the groups with the given ids
func (a *API) GetGroups(ctx context.Context, ids ...int) ([]Group, *moodle.Response, error) {
	if err := form.Require(map[string]any{"groupids": ids}); err != nil {
		return nil, nil, err
	}

	params := url.Values{}
	form.List(params, "groupids", ids)

	var groups []Group
	resp, err := a.client.Get(ctx, "core_group_get_groups", params, &groups)
	if err != nil {
		return nil, resp, err
	}
	return groups, resp, nil
}

// CourseGroups returns every group of a course
func (a *API) CourseGroups(ctx context.Context, courseID int) ([]Group, *moodle.Response, error) {
	params := url.Values{
		"courseid": {strconv.Itoa(courseID)},
	}

	var groups []Group
	resp, err := a.client.Get(ctx, "core_group_get_course_groups", params, &groups)
	if err != nil {
		return nil, resp, err
	}
	return groups, resp, nil
}

// DeleteGroups removes the groups with the given ids
func (a *API) DeleteGroups(ctx context.Context, ids ...int) (*moodle.Response, error) {
	if err := form.Require(map[string]any{"groupids": ids}); err != nil {
		return nil, err
	}

	params := url.Values{}
	form.List(params, "groupids", ids)
	return a.client.Post(ctx, "core_group_delete_groups", params, nil)
}

// Members returns the user ids of each group
func (a *API) Members(ctx context.Context, groupIDs ...int) ([]GroupMembers, *moodle.Response, error) {
	if err := form.Require(map[string]any{"groupids": groupIDs}); err != nil {
		return nil, nil, err
	}

	params := url.Values{}
	form.List(params, "groupids", groupIDs)

	var members []GroupMembers
	resp, err := a.client.Get(ctx, "core_group_get_group_members", params, &members)
	if err != nil {
		return nil, resp, err
	}
	return members, resp, nil
}

// AddMembers adds each user to its group
func (a *API) AddMembers(ctx context.Context, members []Member) (*moodle.Response, error) {
	return postRecords(ctx, a.client, "core_group_add_group_members", "members", members)
}

// DeleteMembers removes each user from its group
func (a *API) DeleteMembers(ctx context.Context, members []Member) (*moodle.Response, error) {
	return postRecords(ctx, a.client, "core_group_delete_group_members", "members", members)
}

// postRecords sends records as name[i][field] to a function that returns nothing
func postRecords[T any](ctx context.Context, client *moodle.Client, function, name string, records []T) (*moodle.Response, error) {
	if err := form.Require(map[string]any{name: records}); err != nil {
		return nil, err
	}

	params := url.Values{}
	if err := form.Records(params, name, records); err != nil {
		return nil, err
	}
	return client.Post(ctx, function, params, nil)
}
