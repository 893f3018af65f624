package group

import (
	"github.com/s0up4200/muddle/moodle"
)

// Group is both the record sent to CreateGroups and the group Moodle returns.
// ID is assigned by the server and never sent.
type Group struct {
	ID                int                `json:"id,omitempty" url:"-"`
	CourseID          int                `json:"courseid" url:"courseid"`
	Name              string             `json:"name" url:"name"`
	Description       string             `json:"description" url:"description"`
	DescriptionFormat *moodle.TextFormat `json:"descriptionformat,omitempty" url:"descriptionformat,omitempty"`
	EnrolmentKey      string             `json:"enrolmentkey,omitempty" url:"enrolmentkey,omitempty"`
	IDNumber          string             `json:"idnumber,omitempty" url:"idnumber,omitempty"`
}

// Member pairs a user with a group for AddMembers and DeleteMembers
type Member struct {
	GroupID int `url:"groupid"`
	UserID  int `url:"userid"`
}

// GroupMembers lists the users of one group
type GroupMembers struct {
	GroupID int   `json:"groupid"`
	UserIDs []int `json:"userids"`
}

// NewGrouping is one record of CreateGroupings
type NewGrouping struct {
	CourseID          int                `url:"courseid"`
	Name              string             `url:"name"`
	Description       string             `url:"description"`
	DescriptionFormat *moodle.TextFormat `url:"descriptionformat,omitempty"`
	IDNumber          string             `url:"idnumber,omitempty"`
}

// GroupingUpdate is one record of UpdateGroupings
type GroupingUpdate struct {
	ID                int                `url:"id"`
	Name              string             `url:"name"`
	Description       string             `url:"description"`
	DescriptionFormat *moodle.TextFormat `url:"descriptionformat,omitempty"`
	IDNumber          string             `url:"idnumber,omitempty"`
}

// Grouping is a grouping as returned by Moodle. Groups is only filled by
// GetGroupings when asked for.
type Grouping struct {
	ID                int               `json:"id"`
	CourseID          int               `json:"courseid"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	DescriptionFormat moodle.TextFormat `json:"descriptionformat"`
	IDNumber          string            `json:"idnumber"`
	Groups            []Group           `json:"groups,omitempty"`
}

// Assignment places a group into a grouping
type Assignment struct {
	GroupingID int `url:"groupingid"`
	GroupID    int `url:"groupid"`
}
