package main

import "booking-bridge/cmd"

func main() {
	cmd.Execute()
}
