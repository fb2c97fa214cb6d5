package main

import "flyer/cmd"

func main() {
	cmd.Execute()
}
