package course

import (
	"time"

	"github.com/s0up4200/muddle/form"
	"github.com/s0up4200/muddle/moodle"
)

// GroupMode controls how groups work inside a course
type GroupMode int

// Group modes
const (
	NoGroups       GroupMode = 0
	SeparateGroups GroupMode = 1
	VisibleGroups  GroupMode = 2
)

// CreateOptions are the optional fields of a new course. Unset fields take
// the site defaults.
type CreateOptions struct {
	IDNumber            string             `url:"idnumber,omitempty"`
	Summary             string             `url:"summary,omitempty"`
	SummaryFormat       *moodle.TextFormat `url:"summaryformat,omitempty"`
	Format              string             `url:"format,omitempty"`
	ShowGrades          *bool              `url:"showgrades,omitempty,int"`
	NewsItems           *int               `url:"newsitems,omitempty"`
	StartDate           *time.Time         `url:"startdate,omitempty,unix"`
	EndDate             *time.Time         `url:"enddate,omitempty,unix"`
	NumSections         *int               `url:"numsections,omitempty"`
	MaxBytes            *int64             `url:"maxbytes,omitempty"`
	ShowReports         *bool              `url:"showreports,omitempty,int"`
	Visible             *bool              `url:"visible,omitempty,int"`
	HiddenSections      *int               `url:"hiddensections,omitempty"`
	GroupMode           *GroupMode         `url:"groupmode,omitempty"`
	GroupModeForce      *bool              `url:"groupmodeforce,omitempty,int"`
	DefaultGroupingID   *int               `url:"defaultgroupingid,omitempty"`
	EnableCompletion    *bool              `url:"enablecompletion,omitempty,int"`
	CompletionNotify    *bool              `url:"completionnotify,omitempty,int"`
	Lang                string             `url:"lang,omitempty"`
	ForceTheme          string             `url:"forcetheme,omitempty"`
	CourseFormatOptions form.Pairs         `url:"courseformatoptions,omitempty"`
}

// NewCourse is one record of CreateMany
type NewCourse struct {
	FullName   string `url:"fullname"`
	ShortName  string `url:"shortname"`
	CategoryID int    `url:"categoryid"`
	CreateOptions
}

// DuplicateOptions choose what a duplicate copies from the source course
type DuplicateOptions struct {
	Activities      *bool `url:"activities,omitempty,int"`
	Blocks          *bool `url:"blocks,omitempty,int"`
	Filters         *bool `url:"filters,omitempty,int"`
	Users           *bool `url:"users,omitempty,int"`
	RoleAssignments *bool `url:"role_assignments,omitempty,int"`
	Comments        *bool `url:"comments,omitempty,int"`
	UserCompletion  *bool `url:"usercompletion,omitempty,int"`
	Logs            *bool `url:"logs,omitempty,int"`
	GradeHistories  *bool `url:"grade_histories,omitempty,int"`
}

// Created identifies a course made by Create, CreateMany or Duplicate
type Created struct {
	ID        int    `json:"id"`
	ShortName string `json:"shortname"`
}

// Course is a course as returned by core_course_get_courses
type Course struct {
	ID                  int               `json:"id"`
	ShortName           string            `json:"shortname"`
	CategoryID          int               `json:"categoryid"`
	CategorySortOrder   int               `json:"categorysortorder"`
	FullName            string            `json:"fullname"`
	DisplayName         string            `json:"displayname"`
	IDNumber            string            `json:"idnumber"`
	Summary             string            `json:"summary"`
	SummaryFormat       moodle.TextFormat `json:"summaryformat"`
	Format              string            `json:"format"`
	ShowGrades          int               `json:"showgrades"`
	NewsItems           int               `json:"newsitems"`
	StartDate           int64             `json:"startdate"`
	EndDate             int64             `json:"enddate"`
	NumSections         int               `json:"numsections"`
	MaxBytes            int64             `json:"maxbytes"`
	ShowReports         int               `json:"showreports"`
	Visible             int               `json:"visible"`
	HiddenSections      int               `json:"hiddensections"`
	GroupMode           GroupMode         `json:"groupmode"`
	GroupModeForce      int               `json:"groupmodeforce"`
	DefaultGroupingID   int               `json:"defaultgroupingid"`
	TimeCreated         int64             `json:"timecreated"`
	TimeModified        int64             `json:"timemodified"`
	EnableCompletion    int               `json:"enablecompletion"`
	CompletionNotify    int               `json:"completionnotify"`
	Lang                string            `json:"lang"`
	ForceTheme          string            `json:"forcetheme"`
	CategoryName        string            `json:"categoryname,omitempty"`
	CourseFormatOptions []form.Pair       `json:"courseformatoptions,omitempty"`
}

// Start returns the start date as a time
func (c Course) Start() time.Time {
	return time.Unix(c.StartDate, 0)
}

// FieldResult is the answer of core_course_get_courses_by_field
type FieldResult struct {
	Courses  []Course         `json:"courses"`
	Warnings []moodle.Warning `json:"warnings"`
}

// Section is one section of a course page
type Section struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Visible       int               `json:"visible"`
	Summary       string            `json:"summary"`
	SummaryFormat moodle.TextFormat `json:"summaryformat"`
	Section       int               `json:"section"`
	UserVisible   bool              `json:"uservisible"`
	Modules       []Module          `json:"modules"`
}

// Module is an activity or resource within a section
type Module struct {
	ID          int       `json:"id"`
	URL         string    `json:"url,omitempty"`
	Name        string    `json:"name"`
	Instance    int       `json:"instance"`
	Description string    `json:"description,omitempty"`
	Visible     int       `json:"visible"`
	UserVisible bool      `json:"uservisible"`
	ModName     string    `json:"modname"`
	ModPlural   string    `json:"modplural"`
	Indent      int       `json:"indent"`
	Contents    []Content `json:"contents,omitempty"`
}

// Content is a file or URL attached to a module
type Content struct {
	Type         string `json:"type"`
	FileName     string `json:"filename"`
	FilePath     string `json:"filepath"`
	FileSize     int64  `json:"filesize"`
	FileURL      string `json:"fileurl"`
	TimeCreated  int64  `json:"timecreated"`
	TimeModified int64  `json:"timemodified"`
	MimeType     string `json:"mimetype,omitempty"`
}
