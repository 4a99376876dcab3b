package main

import "go-voicings/cmd"

func main() {
	cmd.Execute()
}
