package main

import "github.com/open-feature/go-sdk-lite/cmd"

func main() {
	cmd.Execute()
}
