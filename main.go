package main

import "github.com/nutshell-tools/nutshell/cmd"

func main() {
	cmd.Execute()
}
