package main

import "github.com/chriserin/fspec/cmd"

func main() {
	cmd.Execute()
}
