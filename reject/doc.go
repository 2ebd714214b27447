// Package reject builds the inter-sector visibility matrix spec.md §4.K
// describes: a union-find over sectors connected by a two-sided linedef,
// followed by an N×N symmetric bit matrix marking which sector pairs
// cannot possibly see each other. It reuses the union-find fields already
// carried on level.Sector (RejectGroup, RejectRing) rather than building
// a parallel structure, following the teacher library's prim_kruskal
// disjoint-set shape adapted from string vertex IDs to sector indices.
package reject
