// Package gap finds unused ("free") identifiers among AL extension objects.
//
// Two strategies are provided:
//
//   - FindFree reports the holes between consecutive observed identifiers
//     of the same category. It needs no project metadata and never reports
//     anything below a category's lowest or above its highest identifier.
//   - FreeInRanges and NextFree work against the ID ranges a project
//     declares in its app.json manifest, so they also see free identifiers
//     before the first and after the last object of a category.
//
// All functions are pure; inputs are never mutated.
package gap
