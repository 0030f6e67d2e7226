package main

import "github.com/hooop/axon/cmd/axon/cmd"

func main() {
	cmd.Execute()
}
