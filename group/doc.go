// Package group wraps the core_group web-service functions: groups, their
// members and groupings.
//
// Every function works on lists. Each record is sent as an indexed entry,
// e.g. groups[0][courseid], groups[1][courseid], in the order given.
//
// # Usage
//
//	api := group.New(client)
//
//	groups, _, err := api.CreateGroups(ctx, []group.Group{
//		{CourseID: 10, Name: "Tutorial A"},
//		{CourseID: 10, Name: "Tutorial B"},
//	})
//
//	_, err = api.AddMembers(ctx, []group.Member{
//		{GroupID: groups[0].ID, UserID: 7},
//	})
package group
