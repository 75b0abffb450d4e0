package main

import "github.com/halchemy/bookpath/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
