package main

import (
	cmd "github.com/kerbaras/ucfprep/cmd/ucfprep"
)

func main() {
	cmd.Execute()
}
