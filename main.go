package main

import "github.com/tokenguard/tokenguard/cmd"

func main() {
	cmd.Execute()
}
