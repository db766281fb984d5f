package main

import "github.com/DevRyuki/todo-with-cline/cmd"

func main() {
	cmd.Execute()
}
