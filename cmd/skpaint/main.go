// Command skpaint inspects shader assets and project configuration for the
// skpaint graphics bindings.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/skpaint/cmd/skpaint/cmd"
	"github.com/go-drift/skpaint/pkg/errors"
)

func main() {
	defer errors.Recover("skpaint")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
