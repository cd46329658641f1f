package main

import "github.com/doclayer/formlens/cmd/formlens/cmd"

func main() {
	cmd.Execute()
}
