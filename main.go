package main

import "github.com/iksnae/cursor-threads/cmd"

func main() {
	cmd.Execute()
}
