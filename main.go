package main

import "tsl-devserver/cmd"

func main() {
	cmd.Execute()
}
