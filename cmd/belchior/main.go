package main

import "github.com/figueras/belchior/internal/cli"

func main() {
	cli.Execute()
}
