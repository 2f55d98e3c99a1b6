// Package auth provides authentication for the application.
//
// Accounts live in the local database with Argon2id password hashing.
// LocalProvider covers the account lifecycle: authentication, creation,
// password changes, activation and email verification.
//
// Authorization is not permission tables: what a user may do with a
// group is decided by the capability gate in internal/access, fed with
// a Viewer built from the session. The middleware in this package turns
// the current request into that Viewer and offers route guards:
//   - ViewerFrom: the request's viewer identity, anonymous when signed out
//   - RequireSignIn: redirect signed-out requests to the login page
//   - RequireVerified: reject content creation by unverified accounts
package auth
