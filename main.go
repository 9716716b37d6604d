package main

import "github.com/nconklindev/tabconv/cmd"

func main() {
	cmd.Execute()
}
