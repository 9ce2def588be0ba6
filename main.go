package main

import "github.com/nethalo/tidbcheck/cmd"

func main() {
	cmd.Execute()
}
