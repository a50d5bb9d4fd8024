// Package plan builds the type tree consumed by code generation.
//
// Build pipeline:
//  1. Load the schema document (ordered node tree + raw text)
//  2. For each top-level entry, walk its fields in declaration order:
//     - resolve the field annotation
//     - primitive: attach the scalar kind
//     - struct: build the nested mapping as a child record
//     - vector: build the first sequence element as the element record
//  3. Qualify every record by its ancestor chain and reject collisions
//  4. Collect non-fatal diagnostics (ambiguous field annotations)
//
// Children are always built before the parent that references them, and
// every child is owned by exactly one field.
package plan
