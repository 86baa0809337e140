// Package cli provides the interactive taskboard command-line client.
//
// It sits on top of the session manager and the resource API: the user
// registers, logs in (completing a second-factor challenge when the service
// asks for one), and then browses projects, tasks, classes, cohorts and
// invitations. The current location (login page or dashboard) is tracked
// by a navigator.Recorder and shown in the prompt; a rejected session sends
// the user back to the login page.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
