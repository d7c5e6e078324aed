// Package console is the interactive RentDesk front end.
//
// It plays the role of the UI over the directory store: it prompts for
// credentials and forms, performs the input checks the store leaves to its
// caller (phone and Aadhar formats, password confirmation, file size), and
// renders results as inline messages. A session established by login or
// sign-up is kept by the App and resumed from the store on start.
//
// Commands depend on who is logged in:
//
//	anyone:  help, exit | quit
//	guest:   login, signup, forgot
//	tenant:  register, dashboard, pay, payments, rooms, logout
//	owner:   summary, rooms [floor], payments, logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package console
