package main

import "example.com/MikuPush/cmd"

func main() {
	cmd.Execute()
}
