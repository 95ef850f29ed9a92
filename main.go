package main

import "careerkit/cmd"

func main() {
	cmd.Execute()
}
