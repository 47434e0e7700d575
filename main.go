package main

import "github.com/w3xpt/pyed/cmd"

func main() {
	cmd.Execute()
}
