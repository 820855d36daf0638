// Package topology decides which timer-service factory nodes a component
// gets and builds them as pure data.
//
// For an applicable component the result is one of:
//
//	not required                  -> [non-functional]
//	required, no provider         -> [plain]
//	required, provider selected   -> [transient, persistent, composite -> {transient, persistent}]
//
// The plain and composite nodes share the unfiltered factory name, so the
// component's create service always binds to the same name whichever shape
// was chosen. Nothing here starts a factory; the installer does that by
// calling each node's Spec once its dependencies are up.
package topology
