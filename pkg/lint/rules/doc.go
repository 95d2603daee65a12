// Package rules provides the built-in lint rules for rbfix.
//
// Rules are identified RuboCop style, by department and name:
//
//   - InternalAffairs/NodePatternMetatypes: node pattern unions that list
//     every member of a metatype, such as {send csend}, are replaced by the
//     metatype name. Correctable.
//   - Layout/LineLength: lines longer than the configured maximum. Not
//     correctable; with --disable-uncorrectable its offenses are silenced
//     with rubocop:todo directives.
package rules
