package main

import (
	"fmt"

	"github.com/mcuadros/go-jsonschema-generator"
	"github.com/shaie/browze/pkg/api"
)

// prints the JSON schemas of the non-recursive api/zoo bodies. The
// generator does not terminate on the self-referencing api.Node.
func main() {
	for _, body := range []interface{}{&api.Stat{}, &api.Status{}, &api.ConnectResult{}} {
		s := &jsonschema.Document{}
		s.Read(body)
		fmt.Println(s)
	}
}
