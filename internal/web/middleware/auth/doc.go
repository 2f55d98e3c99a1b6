// Package auth provides the session middleware for the web application.
//
// The middleware resolves the session cookie and adds the current user
// to fiber.Locals for handlers and templates. It deliberately does NOT
// force a login: anonymous visitors browse public group pages, and only
// the route guards in internal/auth (RequireSignIn, RequireVerified)
// block them from the rest.
//
// Usage:
//
//	app.Use(authmiddleware.Middleware)
package auth
