// Package astar implements A* over a model.Grid for step-by-step visualization.
//
// Search is synchronous: it mutates cell tags as it explores and hands control
// back to its caller only through the onStep hook, once per expansion and once
// per reconstructed path cell. The frontier is ordered by f-score with the
// insertion sequence as tie-break, so runs are fully deterministic.
package astar
