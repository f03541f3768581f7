// Package main is the entry point for the muadel CLI.
package main

func main() {
	Execute()
}
