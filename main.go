package main

import "movies-api/cmd"

func main() {
	cmd.Execute()
}
