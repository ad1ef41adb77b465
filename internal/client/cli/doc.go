// Package cli implements the users service command-line client.
//
// Every command is a single RPC: register, login, users, user, add-user,
// whoami, content and ping. The shell command starts an interactive loop in
// which a token obtained by login is kept for the rest of the session.
// Tokens are held in memory only; pass one to a one-shot command with -t or
// USERSVC_TOKEN.
//
// Missing usernames and emails are prompted for on the input reader, missing
// passwords are read from the terminal without echo.
package cli
