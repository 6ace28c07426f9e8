package main

import "github.com/zjrosen/feeportal/cmd"

func main() {
	cmd.Execute()
}
