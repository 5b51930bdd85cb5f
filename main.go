package main

import "github.com/kamusis/smartfind/cmd"

func main() {
	cmd.Execute()
}
