// Package manifest reads and writes the ordered work-item lists that drive
// batch processing. A manifest is a JSON array of {url, title} objects;
// fetch can also emit CSV and plain-text renderings for human use.
package manifest
