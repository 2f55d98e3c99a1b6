// Package main provides the entry point for the CommonsHub community
// platform. It starts a web server using the Fiber framework where people
// create and join groups, follow discussions, share documents, plan actions
// and browse a group activity log. The application uses gorm for data
// persistence and keeps all authorization decisions in a single capability
// gate shared by the web handlers and the group lifecycle workflow.
package main
