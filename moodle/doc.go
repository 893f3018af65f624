// Package moodle provides the connection to a Moodle site's REST web-service
// endpoint.
//
// Every web-service function is reached through one URL,
// <site>/webservice/rest/server.php, and selected with the wsfunction
// parameter. The client adds the token (wstoken) and the response format
// (moodlewsrestformat=json) to each call; the API packages (course,
// category, group, users, stats, presentation) build the remaining
// parameters with the form package.
//
// # Usage
//
//	logger := zerolog.New(os.Stdout)
//	client, err := moodle.NewClient(
//		"https://moodle.example.com",
//		"your-token",
//		logger,
//		moodle.WithTimeout(30*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	info, _, err := client.SiteInfo(ctx)
//
// # Error Handling
//
//   - ErrInvalidConfig: Invalid client configuration
//   - ErrReservedParam: Call parameters collide with wstoken, moodlewsrestformat or wsfunction
//   - TransportError: Network or TLS failure, unwraps to the cause
//   - APIError: Non-2xx HTTP status
//   - RemoteError: Exception payload returned by the web service
//
// Moodle reports function failures with HTTP 200 and a JSON body such as
//
//	{"exception":"invalid_parameter_exception","errorcode":"invalidparameter","message":"..."}
//
// which the client returns as a *RemoteError:
//
//	var remoteErr *moodle.RemoteError
//	if errors.As(err, &remoteErr) && remoteErr.IsInvalidToken() {
//		// Handle bad token
//	}
//
// Nothing is retried: create functions are not idempotent.
package moodle
