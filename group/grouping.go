package group

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// CreateGroupings makes one grouping per record
func (a *API) CreateGroupings(ctx context.Context, groupings []NewGrouping) ([]Grouping, *moodle.Response, error) {
	if err := form.Require(map[string]any{"groupings": groupings}); err != nil {
		return nil, nil, err
	}
	for i, g := range groupings {
		if err := form.Require(map[string]any{"courseid": g.CourseID, "name": g.Name}); err != nil {
			return nil, nil, fmt.Errorf("grouping %d: %w", i, err)
		}
	}

	params := url.Values{}
	if err := form.Records(params, "groupings", groupings); err != nil {
		return nil, nil, err
	}

	var created []Grouping
	resp, err := a.client.Post(ctx, "core_group_create_groupings", params, &created)
	if err != nil {
		return nil, resp, err
	}
	return created, resp, nil
}

// UpdateGroupings replaces the name, description and idnumber of each grouping
func (a *API) UpdateGroupings(ctx context.Context, groupings []GroupingUpdate) (*moodle.Response, error) {
	for i, g := range groupings {
		if err := form.Require(map[string]any{"id": g.ID, "name": g.Name}); err != nil {
			return nil, fmt.Errorf("grouping %d: %w", i, err)
		}
	}
	return postRecords(ctx, a.client, "core_group_update_groupings", "groupings", groupings)
}

// GetGroupings returns the groupings with the given ids, including their
// groups when returnGroups is set
func (a *API) GetGroupings(ctx context.Context, returnGroups bool, ids ...int) ([]Grouping, *moodle.Response, error) {
	if err := form.Require(map[string]any{"groupingids": ids}); err != nil {
		return nil, nil, err
	}

	params := url.Values{
		"returngroups": {form.Bool(returnGroups)},
	}
	form.List(params, "groupingids", ids)

	var groupings []Grouping
	resp, err := a.client.Get(ctx, "core_group_get_groupings", params, &groupings)
	if err != nil {
		return nil, resp, err
	}
	return groupings, resp, nil
}

// CourseGroupings returns every grouping of a course
func (a *API) CourseGroupings(ctx context.Context, courseID int) ([]Grouping, *moodle.Response, error) {
	params := url.Values{
		"courseid": {strconv.Itoa(courseID)},
	}

	var groupings []Grouping
	resp, err := a.client.Get(ctx, "core_group_get_course_groupings", params, &groupings)
	if err != nil {
		return nil, resp, err
	}
	return groupings, resp, nil
}

// DeleteGroupings removes the groupings with the given ids. Their groups are kept.
func (a *API) DeleteGroupings(ctx context.Context, ids ...int) (*moodle.Response, error) {
	if err := form.Require(map[string]any{"groupingids": ids}); err != nil {
		return nil, err
	}

	params := url.Values{}
	form.List(params, "groupingids", ids)
	return a.client.Post(ctx, "core_group_delete_groupings", params, nil)
}

// AssignGrouping adds each group to its grouping
func (a *API) AssignGrouping(ctx context.Context, assignments []Assignment) (*moodle.Response, error) {
	return postRecords(ctx, a.client, "core_group_assign_grouping", "assignments", assignments)
}
