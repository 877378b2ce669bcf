// Package whisper wraps the whisper-mps command line transcriber. Like the
// downloader, it is an opaque collaborator invoked per work item; success
// means exit code zero and a transcript file at the requested path.
package whisper
