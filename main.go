package main

import "github.com/KaramelBytes/unirank-cli/cmd"

func main() {
	cmd.Execute()
}
