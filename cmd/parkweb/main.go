package main

import "github.com/momeni/parking-backend/cmd/parkweb/command"

func main() {
	command.Execute()
}
