package main

import "changelog-api/cmd"

func main() {
	cmd.Execute()
}
