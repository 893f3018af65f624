// Package category wraps the core_course_*_categories web-service functions.
//
// # Usage
//
//	api := category.New(client)
//
//	created, _, err := api.Create(ctx, "Science", category.CreateOptions{
//		Parent:      moodle.Ptr(3),
//		Description: "Faculty of Science",
//	})
//
//	// Move the contents of 10 and 11 into category 5, then delete them
//	_, err = api.Delete(ctx, category.DeleteOptions{NewParent: moodle.Ptr(5)}, 10, 11)
package category
