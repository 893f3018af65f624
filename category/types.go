package category

import (
	"github.com/s0up4200/muddle/moodle"
)

// Category is a course category as returned by core_course_get_categories
type Category struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	IDNumber          string            `json:"idnumber"`
	Description       string            `json:"description"`
	DescriptionFormat moodle.TextFormat `json:"descriptionformat"`
	Parent            int               `json:"parent"`
	SortOrder         int               `json:"sortorder"`
	CourseCount       int               `json:"coursecount"`
	Visible           int               `json:"visible"`
	VisibleOld        int               `json:"visibleold"`
	TimeModified      int64             `json:"timemodified"`
	Depth             int               `json:"depth"`
	Path              string            `json:"path"`
	Theme             string            `json:"theme"`
}

// Created identifies a category made by Create or CreateMany
type Created struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Criterion is one key/value search term of Find, e.g. {Key: "parent", Value: "0"}
type Criterion struct {
	Key   string `url:"key"`
	Value string `url:"value"`
}

// CreateOptions are the optional fields of a new category. Parent defaults
// to the root category and DescriptionFormat to HTML on the server.
type CreateOptions struct {
	Parent            *int               `url:"parent,omitempty"`
	Description       string             `url:"description,omitempty"`
	DescriptionFormat *moodle.TextFormat `url:"descriptionformat,omitempty"`
	Theme             string             `url:"theme,omitempty"`
}

// NewCategory is one record of CreateMany
type NewCategory struct {
	Name string `url:"name"`
	CreateOptions
}

// UpdateOptions are the fields Update may change
type UpdateOptions struct {
	Name              string             `url:"name,omitempty"`
	IDNumber          string             `url:"idnumber,omitempty"`
	Parent            *int               `url:"parent,omitempty"`
	Description       string             `url:"description,omitempty"`
	DescriptionFormat *moodle.TextFormat `url:"descriptionformat,omitempty"`
	Theme             string             `url:"theme,omitempty"`
}

// DeleteOptions apply to every category passed to Delete. A category in the
// root must be given a NewParent unless Recursive is set.
type DeleteOptions struct {
	NewParent *int `url:"newparent,omitempty"`
	Recursive bool `url:"recursive,int"`
}

// DeleteRequest is one record of DeleteEach
type DeleteRequest struct {
	ID        int  `url:"id"`
	Recursive bool `url:"recursive,int"`
	NewParent *int `url:"newparent,omitempty"`
}
