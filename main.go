package main

import "monopoly/cmd"

func main() {
	cmd.Execute()
}
