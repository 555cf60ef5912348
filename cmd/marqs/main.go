package main

import "github.com/marqs-app/marqs/cmd/marqs/cmd"

func main() {
	cmd.Execute()
}
