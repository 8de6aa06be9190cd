package cli

import (
	"fmt"
	"io"
)

// Confirmation asks a yes/no question. Anything but "y" is a no.
func Confirmation(in io.Reader, out io.Writer, question string) bool {
	var answer string

	fmt.Fprintf(out, "%s (y/N): ", question)
	_, err := fmt.Fscanln(in, &answer)
	if err != nil {
		return false
	}
	if answer == "y" {
		return true
	}
	return false
}
