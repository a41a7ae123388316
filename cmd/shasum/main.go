package main

import "massnet.org/shasum/cmd/shasum/cmd"

func main() {
	cmd.Execute()
}
