package main

import "vphim/cmd"

func main() {
	cmd.Execute()
}
