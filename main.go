package main

import "github.com/keypoint/keypointer/cmd"

func main() {
	cmd.Execute()
}
