// Package match provides fuzzy identifier matching used to suggest the
// marker a user most likely meant when a directive is misspelled.
package match
