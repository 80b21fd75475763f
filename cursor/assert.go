//go:build !cursordebug

package cursor

// debugAssertions enables precondition checks on the unchecked fast paths.
const debugAssertions = false
