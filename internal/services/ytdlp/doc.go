// Package ytdlp wraps the yt-dlp command line tool for audio downloads and
// flat playlist enumeration. The tool is an opaque collaborator: exit code
// zero means success, anything else is failure.
package ytdlp
