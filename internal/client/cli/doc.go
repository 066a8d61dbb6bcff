// Package cli provides the interactive companion command-line client for the
// Physical AI & Humanoid Robotics textbook.
//
// It wires configuration, local storage, the backend API client, and an
// interactive REPL around three services: the session (signup, login,
// logout), the chat assistant, and the per-chapter personalize/translate
// actions. A persisted session is restored on startup when a valid token is
// found.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
