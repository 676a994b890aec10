package main

import "github.com/chriserin/gpc/cmd"

func main() {
	cmd.Execute()
}
