// Command descriptor-roundtrip verifies that descriptor graphs survive a serialization round trip.
//
// A compiler front-end describes every declaration it compiles as a graph of descriptors:
// namespaces, classes, functions, their type and value parameters and the types connecting them.
// The same graph is read back from the compiled metadata. Both graphs are dumped to YAML or JSON
// and compared with
//
//	descriptor-roundtrip compare frontend.yaml metadata.yaml
//
// The comparison stops at the first difference of every root namespace and reports the path
// leading to it.
package main

import "github.com/wundergraph/descriptor-roundtrip/cmd"

func main() {
	cmd.Execute()
}
