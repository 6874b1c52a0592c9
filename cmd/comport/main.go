package main

import "github.com/comportlabs/comport/cmd"

func main() {
	cmd.Execute()
}
