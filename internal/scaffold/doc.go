// Package scaffold generates new Flask projects from a fixed, embedded
// template set. It powers the "flaskgen new" command: it resolves the target
// directory, renders every template against a ProjectSpec, writes the
// results in a fixed order, and optionally hands the finished tree to a
// version-control bootstrapper.
//
// Generation is not transactional. A failure after the project directory has
// been created leaves whatever was already written on disk.
package scaffold
