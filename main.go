package main

import "github.com/writespace/writespace/cmd"

func main() {
	cmd.Execute()
}
