// Package services hosts clients for the external tools the pipeline shells
// out to, plus the shared error taxonomy and context annotations they use.
//
// Each subdirectory wraps one command-line collaborator (the audio fetcher,
// the transcriber) behind a typed client so pipeline code never inspects raw
// exit codes.
package services
