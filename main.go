package main

import "github.com/aokihara/cliptrim/cmd"

func main() {
	cmd.Execute()
}
