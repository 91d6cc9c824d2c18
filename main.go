package main

import "github.com/hashforge/gasplot-cli/cmd"

func main() {
	cmd.Execute()
}
