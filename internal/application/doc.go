// Package application provides application initialization and dependency wiring.
// It connects the global data provider and its lookup source to the HTTP
// handlers, router and server, keeping the main package focused on CLI parsing
// and orchestration.
package application
