package main

import "github.com/example/sanename/cmd"

func main() {
	cmd.Execute()
}
