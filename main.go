package main

import "github.com/reirokusanami/destructure/cmd"

func main() {
	cmd.Execute()
}
