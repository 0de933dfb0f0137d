// Package com serializes every native automation call onto one
// dedicated operating system thread.
//
// Objects obtained in a single-threaded apartment must be touched only
// from the thread that created them. The Bridge owns that thread: it
// locks a goroutine to an OS thread, enters an apartment, and executes
// queued units of work one at a time in arrival order. Callers submit
// closures through Execute and block on a future with a wall-clock
// timeout; a caller that gives up abandons its future but never
// interrupts the worker.
//
// When the automation server is busy with a modal dialog it rejects
// incoming calls with one of two well-known transient codes. The
// worker retries those a fixed number of times with a fixed sleep,
// attempting a best-effort dialog dismissal after the first failure.
// Every other error propagates to the caller untouched.
//
// The Session layered on top tracks the connection to the automation
// server and which open presentation subsequent tools operate on. Its
// methods must themselves run inside units of work.
package com
