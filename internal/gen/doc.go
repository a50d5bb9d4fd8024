// Package gen emits source code for a built type tree.
//
// Each top-level record becomes one EmissionUnit holding a declaration file
// and a deserialization file. Output is produced by a registered Target:
//
//   - go: structs named by their record path (Window, WindowSize), a
//     <Type>NodeName constant and a Read<Type>(confnode.Node) function,
//     rendered with text/template and formatted with go/format.
//   - cpp: a yaml-cpp header with one namespace per record and a source
//     file implementing read_config.
//
// Records are always declared after the records their fields use. The same
// plan always yields byte-identical output.
//
// WriteFiles stages every file before replacing anything on disk, and Check
// reports generated files that drifted from what is on disk.
package gen
