package main

import "github.com/iksnae/chatfilter/cmd"

func main() {
	cmd.Execute()
}
