// Package dungeon generates connected dungeon layouts from a numeric seed.
//
// Generation runs four stages in strict order, each consuming the whole
// output of the previous one:
//
//  1. PlaceRooms scatters non-overlapping rooms inside a square of side
//     2*radius centred on the origin (rejection sampling, capped attempts).
//  2. Triangulate builds a Bowyer–Watson Delaunay triangulation over the
//     room centres and flattens it into a deduplicated edge list.
//  3. SelectCorridors reduces that graph to a minimum spanning tree and
//     restores a fraction of the discarded edges as loops.
//  4. Rasterize stamps rooms and corridors onto a Grid of cell classes.
//
// Generate wires the four stages together. For a fixed seed and Params the
// result is identical across runs and platforms: the random stream is a
// xorshift64 generator with explicitly specified arithmetic.
//
// Grid cells are addressed row-major, index = x + y*diameter, where grid
// coordinates are world coordinates shifted by +radius.
package dungeon
