/*
Package servicename provides the hierarchical identifiers under which service
nodes are installed, e.g. `Foo-service.timer-service-factory$TRANSIENT`.

A Name is a dot-separated sequence of segments. Segments that themselves
contain a dot (deployment unit names such as `app.war`) are written quoted:
`deployment."app.war".component`.

The package also owns the allocation rules for timer-service factory nodes, so
that every caller derives the same name for the same (base, variant) pair.
*/
package servicename
