/*
Package sitesdk is a Go client for the Derivity AI site API.

The site keeps the login session in an HttpOnly cookie, so a Client carries
its own cookie jar: Login and Signup store the session cookie and every later
call sends it back.

	client, err := sitesdk.NewClient("https://derivity.example")
	if err != nil {
		return err
	}

	user, err := client.Login(ctx, "jane@example.com", "Abcdefg1")
	if err != nil {
		var apiErr *sitesdk.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusLocked {
			// too many failed attempts, try again later
		}
		return err
	}

	status, err := client.AuthStatus(ctx)
	fmt.Println(status.Authenticated, user.Handle)

	err = client.Logout(ctx)

# Errors

Every non-2xx response is returned as *APIError holding the HTTP status and
the message from the response envelope. The message is meant for end users.

# Thread Safety

A Client is safe for concurrent use; the underlying cookie jar is.
Concurrent logins on one Client overwrite each other's session cookie.
*/
package sitesdk
