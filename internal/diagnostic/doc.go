// Package diagnostic provides structured errors and warnings for the
// config generator.
//
// Key capabilities:
//   - Sentinel errors for every fatal rule (missing annotation, unsupported
//     type, empty list schema, ...) usable with errors.Is
//   - A structured Error carrying the offending record, field and line
//   - "Did you mean" suggestions for misspelled type keywords
//   - Non-fatal warnings collected while building the type tree
package diagnostic
